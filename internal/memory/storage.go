package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// Storage manages the single memory collection in Qdrant.
type Storage struct {
	Client         *qdrant.Client
	CollectionName string
	VectorSize     uint64
}

// NewStorage creates a storage instance connected to Qdrant.
func NewStorage(qdrantURL, collectionName, apiKey string, vectorSize int) (*Storage, error) {
	// Strip http:// or https:// prefix and any port
	qdrantURL = strings.TrimPrefix(qdrantURL, "http://")
	qdrantURL = strings.TrimPrefix(qdrantURL, "https://")

	host := qdrantURL
	if idx := strings.Index(qdrantURL, ":"); idx != -1 {
		host = qdrantURL[:idx]
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   6334, // gRPC port
		APIKey: apiKey,
		UseTLS: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &Storage{
		Client:         client,
		CollectionName: collectionName,
		VectorSize:     uint64(vectorSize),
	}, nil
}

// EnsureCollection creates the collection and its payload indexes if they
// don't exist yet. Idempotent; safe to call on every process start.
func (s *Storage) EnsureCollection(ctx context.Context) error {
	exists, err := s.Client.CollectionExists(ctx, s.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if exists {
		return nil
	}

	err = s.Client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.CollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.VectorSize,
			Distance: qdrant.Distance_Dot,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	// Payload indexes for efficient filtering
	indexes := []struct {
		field string
		typ   qdrant.PayloadSchemaType
	}{
		{"user_id", qdrant.PayloadSchemaType_Integer},
		{"categories", qdrant.PayloadSchemaType_Keyword},
	}

	for _, idx := range indexes {
		fieldType := qdrant.FieldType(idx.typ)
		_, err = s.Client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: s.CollectionName,
			FieldName:      idx.field,
			FieldType:      &fieldType,
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create index for %s: %w", idx.field, err)
		}
	}

	return nil
}

// Insert stores each record as one point and returns the assigned point ids.
// No dedup is performed; identical facts inserted twice produce two points.
func (s *Storage) Insert(ctx context.Context, records []Record) ([]string, error) {
	if len(records) == 0 {
		return []string{}, nil
	}

	ids := make([]string, len(records))
	points := make([]*qdrant.PointStruct, len(records))
	for i, rec := range records {
		ids[i] = uuid.New().String()
		points[i] = recordToPoint(rec, ids[i])
	}

	_, err := s.Client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.CollectionName,
		Points:         points,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert points: %w", err)
	}

	return ids, nil
}

// Search returns the topK stored memories most similar to the query vector,
// restricted to the given user and, when categories is non-empty, to
// records whose categories intersect the given set. Ranking is by dot
// product, descending. An unknown user yields an empty result, not an error.
func (s *Storage) Search(ctx context.Context, queryVector []float32, userID int64, categories []string, topK int) ([]Retrieved, error) {
	searchResult, err := s.Client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.CollectionName,
		Query:          qdrant.NewQuery(queryVector...),
		Filter:         buildSearchFilter(userID, categories),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Retrieved, 0, len(searchResult))
	for _, point := range searchResult {
		results = append(results, pointToRetrieved(point))
	}
	return results, nil
}

// Delete removes the given points. Best-effort; missing ids are not errors.
func (s *Storage) Delete(ctx context.Context, pointIDs []string) error {
	if len(pointIDs) == 0 {
		return nil
	}

	ids := make([]*qdrant.PointId, len(pointIDs))
	for i, id := range pointIDs {
		ids[i] = qdrant.NewIDUUID(id)
	}

	_, err := s.Client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.CollectionName,
		Points:         qdrant.NewPointsSelector(ids...),
	})
	if err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}

// buildSearchFilter always matches the exact user id and additionally
// restricts by category membership when categories are given.
func buildSearchFilter(userID int64, categories []string) *qdrant.Filter {
	must := []*qdrant.Condition{
		qdrant.NewMatchInt("user_id", userID),
	}
	if len(categories) > 0 {
		must = append(must, qdrant.NewMatchKeywords("categories", categories...))
	}
	return &qdrant.Filter{Must: must}
}

func recordToPoint(rec Record, pointID string) *qdrant.PointStruct {
	categoriesValues := make([]*qdrant.Value, len(rec.Categories))
	for i, c := range rec.Categories {
		categoriesValues[i] = qdrant.NewValueString(c)
	}

	payload := map[string]*qdrant.Value{
		"user_id":     qdrant.NewValueInt(rec.UserID),
		"memory_text": qdrant.NewValueString(rec.MemoryText),
		"timestamp":   qdrant.NewValueString(rec.Timestamp),
		"categories": {
			Kind: &qdrant.Value_ListValue{
				ListValue: &qdrant.ListValue{Values: categoriesValues},
			},
		},
	}

	return &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(pointID),
		Vectors: qdrant.NewVectors(rec.Embedding...),
		Payload: payload,
	}
}

func pointToRetrieved(point *qdrant.ScoredPoint) Retrieved {
	payload := point.Payload

	var pointID string
	if point.Id != nil {
		pointID = point.Id.GetUuid()
	}

	return Retrieved{
		PointID:    pointID,
		UserID:     getIntFromPayload(payload, "user_id"),
		MemoryText: getStringFromPayload(payload, "memory_text"),
		Categories: getStringSliceFromPayload(payload, "categories"),
		Timestamp:  getStringFromPayload(payload, "timestamp"),
		Score:      float64(point.Score),
	}
}

// Helper functions for payload extraction
func getStringFromPayload(payload map[string]*qdrant.Value, key string) string {
	if val, ok := payload[key]; ok {
		return val.GetStringValue()
	}
	return ""
}

func getIntFromPayload(payload map[string]*qdrant.Value, key string) int64 {
	if val, ok := payload[key]; ok {
		return val.GetIntegerValue()
	}
	return 0
}

func getStringSliceFromPayload(payload map[string]*qdrant.Value, key string) []string {
	val, ok := payload[key]
	if !ok {
		return []string{}
	}
	listValue := val.GetListValue()
	if listValue == nil {
		return []string{}
	}
	result := make([]string, 0, len(listValue.Values))
	for _, v := range listValue.Values {
		if str := v.GetStringValue(); str != "" {
			result = append(result, str)
		}
	}
	return result
}
