package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/mongo"
	rdb "FarmLink/internal/pkg/redis"
	"FarmLink/internal/pkg/util"
	"FarmLink/internal/repository"
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeMessageRepo 内存版消息库，行为与 Mongo 实现保持一致
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*mongo.Message
	nextID   int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (f *fakeMessageRepo) SaveMessage(_ context.Context, msg *mongo.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = "msg-" + strconv.Itoa(f.nextID)
	f.nextID++
	clone := *msg
	f.messages = append(f.messages, &clone)
	return nil
}

func (f *fakeMessageRepo) ListBetween(_ context.Context, userID, peerID, productID uint64) ([]*mongo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*mongo.Message
	for _, m := range f.messages {
		if m.ProductID != productID {
			continue
		}
		if (m.SenderID == userID && m.ReceiverID == peerID) ||
			(m.SenderID == peerID && m.ReceiverID == userID) {
			clone := *m
			res = append(res, &clone)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (f *fakeMessageRepo) ListReceived(_ context.Context, receiverID uint64) ([]*mongo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*mongo.Message
	for _, m := range f.messages {
		if m.ReceiverID == receiverID {
			clone := *m
			res = append(res, &clone)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (f *fakeMessageRepo) ListUnread(_ context.Context, receiverID uint64) ([]*mongo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*mongo.Message
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && m.Status != consts.MessageStatusRead {
			clone := *m
			res = append(res, &clone)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (f *fakeMessageRepo) MarkDelivered(_ context.Context, receiverID, senderID, productID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var modified int64
	for _, m := range f.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && m.ProductID == productID &&
			m.Status == consts.MessageStatusSent {
			m.Status = consts.MessageStatusDelivered
			modified++
		}
	}
	return modified, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, senderID, receiverID, productID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var modified int64
	for _, m := range f.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && m.ProductID == productID &&
			m.Status != consts.MessageStatusRead {
			m.Status = consts.MessageStatusRead
			modified++
		}
	}
	return modified, nil
}

func (f *fakeMessageRepo) CountMessages(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.messages)), nil
}

func (f *fakeMessageRepo) DistinctUnreadReceivers(_ context.Context) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[uint64]struct{}{}
	var res []uint64
	for _, m := range f.messages {
		if m.Status == consts.MessageStatusRead {
			continue
		}
		if _, ok := seen[m.ReceiverID]; !ok {
			seen[m.ReceiverID] = struct{}{}
			res = append(res, m.ReceiverID)
		}
	}
	return res, nil
}

func (f *fakeMessageRepo) statusOf(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ID == id {
			return m.Status
		}
	}
	return ""
}

// stubRedis 指向不可达地址，推送与缓存读写按尽力而为降级
func stubRedis() {
	rdb.Rdb = goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func setupMessageTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}))
	return db
}

type messageTestEnv struct {
	svc      MessageService
	notify   NotificationService
	repo     *fakeMessageRepo
	buyer    *model.User
	farmer   *model.User
	admin    *model.User
	banned   *model.User
	product  *model.Product
	product2 *model.Product
}

func newMessageTestEnv(t *testing.T) *messageTestEnv {
	stubRedis()
	db := setupMessageTestDB(t)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)

	buyer := &model.User{Name: "Alice", Email: util.PtrString("alice@example.com"), Role: consts.RoleBuyer}
	farmer := &model.User{Name: "Bob", Email: util.PtrString("bob@example.com"), Role: consts.RoleFarmer}
	admin := &model.User{Name: "Root", Email: util.PtrString("root@example.com"), Role: consts.RoleAdmin}
	banned := &model.User{Name: "Eve", Email: util.PtrString("eve@example.com"), Role: consts.RoleBuyer, IsBan: true}
	require.NoError(t, db.Create(buyer).Error)
	require.NoError(t, db.Create(farmer).Error)
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(banned).Error)

	product := &model.Product{FarmerID: farmer.ID, Name: "Tomatoes", Category: "Vegetables", Price: 100, Stock: 10}
	product2 := &model.Product{FarmerID: farmer.ID, Name: "Mangoes", Category: "Fruits", Price: 50, Stock: 5}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(product2).Error)

	repo := newFakeMessageRepo()
	return &messageTestEnv{
		svc:      NewMessageService(repo, userRepo, productRepo),
		notify:   NewNotificationService(repo, userRepo, productRepo),
		repo:     repo,
		buyer:    buyer,
		farmer:   farmer,
		admin:    admin,
		banned:   banned,
		product:  product,
		product2: product2,
	}
}

func TestSendMessageValidation(t *testing.T) {
	env := newMessageTestEnv(t)
	ctx := context.Background()

	t.Run("rejects blank content", func(t *testing.T) {
		_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: "   ",
		})
		assert.ErrorIs(t, err, ErrMessageEmpty)
	})

	t.Run("rejects sending to self", func(t *testing.T) {
		_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
			ReceiverID: env.buyer.ID, ProductID: env.product.ID, Content: "hi",
		})
		assert.ErrorIs(t, err, ErrMessageSelf)
	})

	t.Run("rejects unknown receiver", func(t *testing.T) {
		_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
			ReceiverID: 9999, ProductID: env.product.ID, Content: "hi",
		})
		assert.ErrorIs(t, err, ErrReceiverNotFound)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: 9999, Content: "hi",
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("rejects banned sender", func(t *testing.T) {
		_, err := env.svc.SendMessage(ctx, env.banned.ID, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: "hi",
		})
		assert.ErrorIs(t, err, ErrUserBan)
	})

	t.Run("rejects admin sender", func(t *testing.T) {
		_, err := env.svc.SendMessage(ctx, env.admin.ID, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: "hi",
		})
		assert.ErrorIs(t, err, UnauthorizedError)
	})

	t.Run("rejects unknown sender", func(t *testing.T) {
		_, err := env.svc.SendMessage(ctx, 9999, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: "hi",
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestSendMessageSuccess(t *testing.T) {
	env := newMessageTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
		ReceiverID: env.farmer.ID,
		ProductID:  env.product.ID,
		Content:    "  how fresh are these?  ",
		Status:     "read", // 客户端传入的状态必须被忽略
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "how fresh are these?", res.Content)
	assert.Equal(t, consts.MessageStatusSent, res.Status)
	assert.Equal(t, "Alice", res.SenderName)
	assert.Equal(t, "Bob", res.ReceiverName)
	assert.Equal(t, env.product.ID, res.ProductID)
}

func TestGetMessagesDeliveredSweep(t *testing.T) {
	env := newMessageTestEnv(t)
	ctx := context.Background()

	sent, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
		ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: "hello",
	})
	require.NoError(t, err)
	reply, err := env.svc.SendMessage(ctx, env.farmer.ID, &dto.SendMessageReq{
		ReceiverID: env.buyer.ID, ProductID: env.product.ID, Content: "hi there",
	})
	require.NoError(t, err)

	// 农户打开会话：买家发来的消息迁移为 delivered，自己发出的保持 sent
	messages, err := env.svc.GetMessages(ctx, env.farmer.ID, env.buyer.ID, env.product.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "hi there", messages[1].Content)

	assert.Equal(t, consts.MessageStatusDelivered, env.repo.statusOf(sent.ID))
	assert.Equal(t, consts.MessageStatusSent, env.repo.statusOf(reply.ID))
}

func TestMarkMessagesReadIdempotent(t *testing.T) {
	env := newMessageTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: "msg",
		})
		require.NoError(t, err)
	}

	req := &dto.MarkAsReadReq{SenderID: env.buyer.ID, ProductID: env.product.ID}

	modified, err := env.svc.MarkMessagesRead(ctx, env.farmer.ID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), modified)

	// 再次调用不再有可迁移的行
	modified, err = env.svc.MarkMessagesRead(ctx, env.farmer.ID, req)
	require.NoError(t, err)
	assert.Zero(t, modified)
}

func TestGetConversationList(t *testing.T) {
	env := newMessageTestEnv(t)
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: content,
		})
		require.NoError(t, err)
	}
	_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
		ReceiverID: env.farmer.ID, ProductID: env.product2.ID, Content: "about mangoes",
	})
	require.NoError(t, err)

	conversations, err := env.svc.GetConversationList(ctx, env.farmer.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	byProduct := map[uint64]*dto.ConversationDTO{}
	for _, c := range conversations {
		byProduct[c.ProductID] = c
	}
	require.Contains(t, byProduct, env.product.ID)
	require.Contains(t, byProduct, env.product2.ID)

	assert.Equal(t, 3, byProduct[env.product.ID].UnreadCount)
	assert.Equal(t, "three", byProduct[env.product.ID].LastMessage)
	assert.Equal(t, "Alice", byProduct[env.product.ID].PeerName)
	assert.Equal(t, "Tomatoes", byProduct[env.product.ID].ProductName)
	assert.Equal(t, 1, byProduct[env.product2.ID].UnreadCount)

	// 买家视角没有收到任何消息
	buyerSide, err := env.svc.GetConversationList(ctx, env.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, buyerSide)
}

func TestUnreadSummary(t *testing.T) {
	env := newMessageTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
			ReceiverID: env.farmer.ID, ProductID: env.product.ID, Content: "tomato question",
		})
		require.NoError(t, err)
	}
	_, err := env.svc.SendMessage(ctx, env.buyer.ID, &dto.SendMessageReq{
		ReceiverID: env.farmer.ID, ProductID: env.product2.ID, Content: "mango question",
	})
	require.NoError(t, err)

	summary, err := env.notify.GetUnreadSummary(ctx, env.farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalUnread)
	require.Len(t, summary.Notifications, 2)

	counts := map[uint64]int{}
	for _, n := range summary.Notifications {
		counts[n.ProductID] = n.UnreadCount
		assert.Equal(t, "Alice", n.SenderName)
	}
	assert.Equal(t, 3, counts[env.product.ID])
	assert.Equal(t, 1, counts[env.product2.ID])

	// 标记其中一个会话已读后汇总随之收缩
	_, err = env.svc.MarkMessagesRead(ctx, env.farmer.ID, &dto.MarkAsReadReq{
		SenderID: env.buyer.ID, ProductID: env.product.ID,
	})
	require.NoError(t, err)

	summary, err = env.notify.GetUnreadSummary(ctx, env.farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalUnread)
	require.Len(t, summary.Notifications, 1)
	assert.Equal(t, env.product2.ID, summary.Notifications[0].ProductID)
	assert.Equal(t, "Mangoes", summary.Notifications[0].ProductName)
}

func TestUnknownNameFallback(t *testing.T) {
	env := newMessageTestEnv(t)
	ctx := context.Background()

	// 直接注入一条发送者与商品都已不存在的历史消息
	require.NoError(t, env.repo.SaveMessage(ctx, &mongo.Message{
		SenderID:   4242,
		ReceiverID: env.farmer.ID,
		ProductID:  4242,
		Content:    "ghost",
		Status:     consts.MessageStatusSent,
		CreatedAt:  time.Now(),
	}))

	conversations, err := env.svc.GetConversationList(ctx, env.farmer.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, consts.UnknownUserName, conversations[0].PeerName)
	assert.Equal(t, consts.UnknownProductName, conversations[0].ProductName)
}

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "im:typing:1:2:3", TypingChannel(1, 2, 3))
	assert.Equal(t, "im:user:7", UserChannel(7))
}

func TestBroadcastTypingBestEffort(t *testing.T) {
	env := newMessageTestEnv(t)

	// 总线不可达时输入状态广播降级为日志，不向请求方回传失败
	err := env.svc.BroadcastTyping(context.Background(), env.buyer.ID, &dto.TypingReq{
		ReceiverID: env.farmer.ID,
		ProductID:  env.product.ID,
	})
	assert.NoError(t, err)
}
