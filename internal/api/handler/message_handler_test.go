package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMessageService 只记录调用并返回固定结果
type stubMessageService struct {
	sent      *dto.SendMessageReq
	sendErr   error
	gotUserID uint64
}

func (s *stubMessageService) SendMessage(_ context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	s.gotUserID = senderID
	s.sent = req
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &dto.MessageDTO{
		ID:         "msg-1",
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		ProductID:  req.ProductID,
		Content:    req.Content,
		Status:     consts.MessageStatusSent,
	}, nil
}

func (s *stubMessageService) GetMessages(context.Context, uint64, uint64, uint64) ([]*dto.MessageDTO, error) {
	return []*dto.MessageDTO{}, nil
}

func (s *stubMessageService) MarkMessagesRead(context.Context, uint64, *dto.MarkAsReadReq) (int64, error) {
	return 2, nil
}

func (s *stubMessageService) GetConversationList(context.Context, uint64) ([]*dto.ConversationDTO, error) {
	return []*dto.ConversationDTO{}, nil
}

func (s *stubMessageService) BroadcastTyping(context.Context, uint64, *dto.TypingReq) error {
	return nil
}

func newMessageTestRouter(svc service.MessageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMessageHandler(svc, nil)
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint64(7))
	})
	r.POST("/api/messages", h.SendMessage)
	r.PUT("/api/messages/read", h.MarkAsRead)
	r.GET("/api/messages/:peerId/:productId", h.GetMessages)
	return r
}

func TestSendMessageHandler(t *testing.T) {
	stub := &stubMessageService{}
	r := newMessageTestRouter(stub)

	body, _ := json.Marshal(dto.SendMessageReq{ReceiverID: 2, ProductID: 3, Content: "hello"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(7), stub.gotUserID)

	var res dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 200, res.Code)
}

func TestSendMessageHandlerBadBody(t *testing.T) {
	stub := &stubMessageService{}
	r := newMessageTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader([]byte(`{"receiver_id":2}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 400, res.Code)
	assert.Nil(t, stub.sent)
}

func TestSendMessageHandlerServiceError(t *testing.T) {
	stub := &stubMessageService{sendErr: service.ErrReceiverNotFound}
	r := newMessageTestRouter(stub)

	body, _ := json.Marshal(dto.SendMessageReq{ReceiverID: 99, ProductID: 3, Content: "hello"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 404, res.Code)
}

func TestGetMessagesHandlerBadParams(t *testing.T) {
	stub := &stubMessageService{}
	r := newMessageTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/messages/abc/3", nil)
	r.ServeHTTP(w, req)

	var res dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 400, res.Code)
}

func TestMarkAsReadHandler(t *testing.T) {
	stub := &stubMessageService{}
	r := newMessageTestRouter(stub)

	body, _ := json.Marshal(dto.MarkAsReadReq{SenderID: 2, ProductID: 3})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/messages/read", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 200, res.Code)
}
