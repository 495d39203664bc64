package mongodb

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "fraud-service/models"

	// External Packages
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalysesRepository archives completed analyses for offline review. The
// archive is an audit trail, separate from the TTL-bounded history store.
type AnalysesRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewAnalysesRepository(client *mongo.Client, database string) *AnalysesRepository {
	return &AnalysesRepository{client: client, database: database, collection: "analyses"}
}

// InsertAnalysis stores one analysis record.
func (r *AnalysesRepository) InsertAnalysis(ctx context.Context, rec models.AnalysisRecord) error {
	collection := r.client.Database(r.database).Collection(r.collection)
	_, err := collection.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	return nil
}
