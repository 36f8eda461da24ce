package reftables

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/plantops/chillerwatch/internal/domain"
)

// DynamoStore reads refrigerant saturation curves from a DynamoDB table keyed
// by refrigerant name, caching each curve after the first query. Altitude
// correction and any refrigerant missing from the table fall back to the
// in-memory set, so a cold or unreachable table degrades instead of failing
// ingestions.
type DynamoStore struct {
	svc      *dynamodb.Client
	table    string
	fallback *Memory

	mu     sync.RWMutex
	cached map[string][]Point
}

type curveItem struct {
	Refrigerant string  `dynamodbav:"refrigerant"`
	Pressure    float64 `dynamodbav:"pressure"`
	Temp        float64 `dynamodbav:"temp"`
}

func NewDynamoStore(region, table string, fallback *Memory) (*DynamoStore, error) {
	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &DynamoStore{
		svc:      dynamodb.NewFromConfig(cfg),
		table:    table,
		fallback: fallback,
		cached:   make(map[string][]Point),
	}, nil
}

func (d *DynamoStore) curve(ctx context.Context, refrigerant string) []Point {
	key := strings.ToLower(strings.TrimSpace(refrigerant))

	d.mu.RLock()
	pts, ok := d.cached[key]
	d.mu.RUnlock()
	if ok {
		return pts
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(d.table),
		KeyConditionExpression: aws.String("refrigerant = :r"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": &types.AttributeValueMemberS{Value: key},
		},
	}
	result, err := d.svc.Query(ctx, input)
	if err != nil {
		log.Warn().Err(err).Str("refrigerant", key).Msg("refrigerant curve query failed, using built-in table")
		return nil
	}

	var items []curveItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		log.Warn().Err(err).Str("refrigerant", key).Msg("refrigerant curve unmarshal failed, using built-in table")
		return nil
	}
	for _, it := range items {
		pts = append(pts, Point{Pressure: it.Pressure, Temp: it.Temp})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Pressure < pts[j].Pressure })

	d.mu.Lock()
	d.cached[key] = pts
	d.mu.Unlock()
	return pts
}

func (d *DynamoStore) RefrigerantTempAtPressure(ctx context.Context, refrigerant string, pressure float64) (float64, bool) {
	if pts := d.curve(ctx, refrigerant); len(pts) > 0 {
		return interpolate(pts, pressure, func(p Point) float64 { return p.Pressure }, func(p Point) float64 { return p.Temp })
	}
	return d.fallback.RefrigerantTempAtPressure(ctx, refrigerant, pressure)
}

func (d *DynamoStore) RefrigerantPressureAtTemp(ctx context.Context, refrigerant string, temp float64) (float64, bool) {
	if pts := d.curve(ctx, refrigerant); len(pts) > 0 {
		return interpolate(pts, temp, func(p Point) float64 { return p.Temp }, func(p Point) float64 { return p.Pressure })
	}
	return d.fallback.RefrigerantPressureAtTemp(ctx, refrigerant, temp)
}

func (d *DynamoStore) AltitudeCorrection(ctx context.Context, altitude float64, units domain.UnitSystem) (float64, bool) {
	return d.fallback.AltitudeCorrection(ctx, altitude, units)
}
