package repository

import (
	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
)

// filterFromConditions translates conditions into a conjunctive Mongo filter
func filterFromConditions(conds []models.Condition) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		ops, ok := filter[c.Field].(bson.M)
		if !ok {
			ops = bson.M{}
			filter[c.Field] = ops
		}
		ops[string(c.Op)] = c.Value
	}
	return filter
}
