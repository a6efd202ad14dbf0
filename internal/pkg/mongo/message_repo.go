package mongo

import (
	"FarmLink/internal/pkg/consts"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepo interface {
	SaveMessage(ctx context.Context, msg *Message) error
	ListBetween(ctx context.Context, userID, peerID, productID uint64) ([]*Message, error)
	ListReceived(ctx context.Context, receiverID uint64) ([]*Message, error)
	ListUnread(ctx context.Context, receiverID uint64) ([]*Message, error)
	MarkDelivered(ctx context.Context, receiverID, senderID, productID uint64) (int64, error)
	MarkRead(ctx context.Context, senderID, receiverID, productID uint64) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
	DistinctUnreadReceivers(ctx context.Context) ([]uint64, error)
}

type messageRepoImpl struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepoImpl{
		col: db.Collection("messages"),
	}
}

var unreadStatuses = bson.A{consts.MessageStatusSent, consts.MessageStatusDelivered}

// SaveMessage 将消息存入 MongoDB 并回填生成的 ID
func (s *messageRepoImpl) SaveMessage(ctx context.Context, msg *Message) error {
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid.Hex()
	}
	return nil
}

// ListBetween 拉取双方在某个商品下的完整往来记录，按时间正序
func (s *messageRepoImpl) ListBetween(ctx context.Context, userID, peerID, productID uint64) ([]*Message, error) {
	filter := bson.M{
		"product_id": productID,
		"$or": bson.A{
			bson.M{"sender_id": userID, "receiver_id": peerID},
			bson.M{"sender_id": peerID, "receiver_id": userID},
		},
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	return s.find(ctx, filter, findOptions)
}

// ListReceived 某用户收到的全部消息，按时间倒序，会话聚合的输入
func (s *messageRepoImpl) ListReceived(ctx context.Context, receiverID uint64) ([]*Message, error) {
	filter := bson.M{"receiver_id": receiverID}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, filter, findOptions)
}

// ListUnread 某用户收到且仍处于 sent/delivered 状态的消息，按时间倒序
func (s *messageRepoImpl) ListUnread(ctx context.Context, receiverID uint64) ([]*Message, error) {
	filter := bson.M{
		"receiver_id": receiverID,
		"status":      bson.M{"$in": unreadStatuses},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, filter, findOptions)
}

// MarkDelivered 批量投递扫描：仅迁移仍处于 sent 的行，与并发 send 天然互不干扰。
// 晚到的消息保持 sent，等待下一次拉取。
func (s *messageRepoImpl) MarkDelivered(ctx context.Context, receiverID, senderID, productID uint64) (int64, error) {
	filter := bson.M{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"product_id":  productID,
		"status":      consts.MessageStatusSent,
	}
	res, err := s.col.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"status": consts.MessageStatusDelivered},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// MarkRead 已读扫描：迁移 sent/delivered 两种状态，已 read 的行不受影响，天然幂等
func (s *messageRepoImpl) MarkRead(ctx context.Context, senderID, receiverID, productID uint64) (int64, error) {
	filter := bson.M{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"product_id":  productID,
		"status":      bson.M{"$in": unreadStatuses},
	}
	res, err := s.col.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"status": consts.MessageStatusRead},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *messageRepoImpl) CountMessages(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

// DistinctUnreadReceivers 存在未读消息的接收者集合，校准任务的扫描入口
func (s *messageRepoImpl) DistinctUnreadReceivers(ctx context.Context) ([]uint64, error) {
	values, err := s.col.Distinct(ctx, "receiver_id", bson.M{
		"status": bson.M{"$in": unreadStatuses},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int64:
			ids = append(ids, uint64(n))
		case int32:
			ids = append(ids, uint64(n))
		case uint64:
			ids = append(ids, n)
		}
	}
	return ids, nil
}

func (s *messageRepoImpl) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Message, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
