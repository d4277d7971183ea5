package dynamodb

import (
	"context"
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nijaru/yt-digest/errors"
	"github.com/nijaru/yt-digest/models"
)

// API is the subset of the DynamoDB client used by Repository.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// listProjection leaves out anything not rendered by the read API.
var listProjection = map[string]string{
	"#hashtag":      "hashtag",
	"#processedAt":  "processedAt",
	"#videoId":      "videoId",
	"#title":        "title",
	"#channelTitle": "channelTitle",
	"#publishedAt":  "publishedAt",
	"#thumbnails":   "thumbnails",
	"#viewCount":    "viewCount",
	"#likeCount":    "likeCount",
	"#sum":          "summary",
}

type Repository struct {
	client       API
	tableName    string
	videoIDIndex string
}

func NewRepository(client API, tableName, videoIDIndex string) *Repository {
	return &Repository{
		client:       client,
		tableName:    tableName,
		videoIDIndex: videoIDIndex,
	}
}

// NewClient builds a DynamoDB client. A non-empty endpoint targets DynamoDB Local.
func NewClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func (r *Repository) Put(ctx context.Context, record *models.SummaryRecord) error {
	const op = "DynamoDBRepository.Put"

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return errors.Internal(op, err, "Failed to marshal summary record")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return errors.Unavailable(op, err, "Failed to put summary record")
	}
	return nil
}

func (r *Repository) ExistsByVideoID(ctx context.Context, videoID string) (bool, error) {
	const op = "DynamoDBRepository.ExistsByVideoID"

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.videoIDIndex),
		KeyConditionExpression: aws.String("videoId = :vid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vid": &types.AttributeValueMemberS{Value: videoID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return false, errors.Unavailable(op, err, "Failed to query video index")
	}

	return len(out.Items) > 0, nil
}

func (r *Repository) ListByHashtag(ctx context.Context, hashtag string, limit int) ([]models.SummaryRecord, error) {
	const op = "DynamoDBRepository.ListByHashtag"

	names := make([]string, 0, len(listProjection))
	for name := range listProjection {
		names = append(names, name)
	}

	records := []models.SummaryRecord{}
	var startKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:                aws.String(r.tableName),
			KeyConditionExpression:   aws.String("#hashtag = :h"),
			ScanIndexForward:         aws.Bool(false),
			ProjectionExpression:     aws.String(strings.Join(names, ", ")),
			ExpressionAttributeNames: listProjection,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":h": &types.AttributeValueMemberS{Value: hashtag},
			},
			ExclusiveStartKey: startKey,
		}
		if limit > 0 {
			input.Limit = aws.Int32(pageLimit(limit - len(records)))
		}

		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, errors.Unavailable(op, err, "Failed to query summaries")
		}

		var page []models.SummaryRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, errors.Internal(op, err, "Failed to unmarshal summaries")
		}
		records = append(records, page...)

		startKey = out.LastEvaluatedKey
		if len(startKey) == 0 || (limit > 0 && len(records) >= limit) {
			break
		}
	}

	return records, nil
}

// pageLimit caps the remaining count to what a single Query accepts.
func pageLimit(remaining int) int32 {
	if remaining > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(remaining)
}
