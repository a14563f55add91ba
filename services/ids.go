package services

import (
	"go-storefront/models"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseID(hex, msg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, utils.NewInvalidArgument(msg)
	}
	return id, nil
}

func parseUserID(hex string) (primitive.ObjectID, error) {
	return parseID(hex, "Invalid user ID")
}

func parseProductID(hex string) (primitive.ObjectID, error) {
	return parseID(hex, "Invalid product ID")
}

// indexProducts keys products by id
func indexProducts(products []models.Product) map[primitive.ObjectID]*models.Product {
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID
}
