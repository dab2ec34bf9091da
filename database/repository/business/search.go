package businessRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func containsPattern(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(strings.TrimSpace(s)), "$options": "i"}
}

func buildSearchFilter(criteria SearchCriteria) bson.M {
	filter := bson.M{"is_published": true}
	if strings.TrimSpace(criteria.Category) != "" {
		filter["category"] = containsPattern(criteria.Category)
	}

	var and bson.A
	if strings.TrimSpace(criteria.Location) != "" {
		loc := containsPattern(criteria.Location)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"address.city": loc},
			bson.M{"address.street": loc},
			bson.M{"address.postal_code": loc},
		}})
	}
	if strings.TrimSpace(criteria.SearchTerms) != "" {
		terms := containsPattern(criteria.SearchTerms)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"name": terms},
			bson.M{"description": terms},
			bson.M{"category": terms},
		}})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

// SearchPublished returns one page of published businesses ordered by name, and the total match count.
func (r *MongoBusinessRepo) SearchPublished(ctx context.Context, criteria SearchCriteria) ([]models.Business, int64, error) {
	ctx, cancel := repository.NewContext(ctx, repository.IndexTimeout)
	defer cancel()

	filter := buildSearchFilter(criteria)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "id", Value: 1}}).
		SetSkip(criteria.Skip).
		SetLimit(criteria.Limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search businesses: %w", err)
	}
	defer cursor.Close(ctx)

	businesses := []models.Business{}
	for cursor.Next(ctx) {
		var b models.Business
		if err := cursor.Decode(&b); err != nil {
			return nil, 0, fmt.Errorf("failed to decode business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error while searching businesses: %w", err)
	}
	return businesses, total, nil
}
