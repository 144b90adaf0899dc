package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"customer_name",
			"email",
			"phone",
			"booking_date",
			"time_slot",
			"event_type",
			"guest_count",
			"status",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"customer_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
				"pattern":   "^[^@\\s]+@[^@\\s]+$",
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"booking_date": bson.M{
				"bsonType":    "string",
				"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
				"description": "calendar date, YYYY-MM-DD",
			},

			"time_slot": bson.M{
				"enum": []string{"morning", "afternoon", "evening"},
			},

			"event_type": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"guest_count": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"special_requests": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"status": bson.M{
				"enum": []string{"pending", "confirmed", "cancelled"},
			},

			"active": bson.M{
				"bsonType":    "bool",
				"description": "true unless status is cancelled",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
