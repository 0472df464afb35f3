// backend-go/internal/service/ids.go
package service

import "go.mongodb.org/mongo-driver/bson/primitive"

func parseHex(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}
