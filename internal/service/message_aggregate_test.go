package service

import (
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/mongo"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msgAt(sender, receiver, product uint64, content, status string, at time.Time) *mongo.Message {
	return &mongo.Message{
		SenderID:   sender,
		ReceiverID: receiver,
		ProductID:  product,
		Content:    content,
		Status:     status,
		CreatedAt:  at,
	}
}

func TestSnippet(t *testing.T) {
	t.Run("short content unchanged", func(t *testing.T) {
		content := strings.Repeat("a", 40)
		assert.Equal(t, content, Snippet(content))
	})

	t.Run("exactly at limit unchanged", func(t *testing.T) {
		content := strings.Repeat("a", 50)
		assert.Equal(t, content, Snippet(content))
	})

	t.Run("long content truncated to 47 plus ellipsis", func(t *testing.T) {
		content := strings.Repeat("a", 60)
		got := Snippet(content)
		assert.Equal(t, strings.Repeat("a", 47)+"...", got)
		assert.Len(t, got, 50)
	})

	t.Run("multibyte content counts runes not bytes", func(t *testing.T) {
		content := strings.Repeat("消", 60)
		got := Snippet(content)
		assert.Equal(t, strings.Repeat("消", 47)+"...", got)
	})
}

func TestBuildConversations(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("groups by sender and product", func(t *testing.T) {
		received := []*mongo.Message{
			msgAt(2, 1, 10, "hello", consts.MessageStatusSent, base),
			msgAt(2, 1, 10, "again", consts.MessageStatusSent, base.Add(time.Minute)),
			msgAt(2, 1, 11, "other product", consts.MessageStatusSent, base.Add(2*time.Minute)),
			msgAt(3, 1, 10, "other peer", consts.MessageStatusSent, base.Add(3*time.Minute)),
		}

		conversations := BuildConversations(received)
		require.Len(t, conversations, 3)
	})

	t.Run("keeps newest message per group", func(t *testing.T) {
		received := []*mongo.Message{
			msgAt(2, 1, 10, "newest", consts.MessageStatusSent, base.Add(time.Hour)),
			msgAt(2, 1, 10, "older", consts.MessageStatusSent, base),
		}

		conversations := BuildConversations(received)
		require.Len(t, conversations, 1)
		assert.Equal(t, "newest", conversations[0].LastMessage)
		assert.Equal(t, base.Add(time.Hour), conversations[0].LastMessageTime)
	})

	t.Run("equal timestamps keep first encountered", func(t *testing.T) {
		received := []*mongo.Message{
			msgAt(2, 1, 10, "first", consts.MessageStatusSent, base),
			msgAt(2, 1, 10, "second", consts.MessageStatusSent, base),
		}

		conversations := BuildConversations(received)
		require.Len(t, conversations, 1)
		assert.Equal(t, "first", conversations[0].LastMessage)
	})

	t.Run("unread count excludes read messages", func(t *testing.T) {
		received := []*mongo.Message{
			msgAt(2, 1, 10, "a", consts.MessageStatusSent, base),
			msgAt(2, 1, 10, "b", consts.MessageStatusDelivered, base.Add(time.Minute)),
			msgAt(2, 1, 10, "c", consts.MessageStatusRead, base.Add(2*time.Minute)),
		}

		conversations := BuildConversations(received)
		require.Len(t, conversations, 1)
		assert.Equal(t, 2, conversations[0].UnreadCount)
	})

	t.Run("sorted by last message time descending", func(t *testing.T) {
		received := []*mongo.Message{
			msgAt(2, 1, 10, "old", consts.MessageStatusSent, base),
			msgAt(3, 1, 10, "new", consts.MessageStatusSent, base.Add(time.Hour)),
		}

		conversations := BuildConversations(received)
		require.Len(t, conversations, 2)
		assert.Equal(t, uint64(3), conversations[0].PeerID)
		assert.Equal(t, uint64(2), conversations[1].PeerID)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Empty(t, BuildConversations(nil))
	})
}

func TestBuildUnreadSummary(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("total equals sum of group counts", func(t *testing.T) {
		unread := []*mongo.Message{
			msgAt(2, 1, 10, "m1", consts.MessageStatusSent, base),
			msgAt(2, 1, 10, "m2", consts.MessageStatusSent, base.Add(time.Minute)),
			msgAt(2, 1, 10, "m3", consts.MessageStatusDelivered, base.Add(2*time.Minute)),
			msgAt(3, 1, 11, "m4", consts.MessageStatusSent, base.Add(3*time.Minute)),
		}

		summary := BuildUnreadSummary(unread)
		require.Len(t, summary.Notifications, 2)
		assert.Equal(t, 4, summary.TotalUnread)

		counts := map[uint64]int{}
		for _, n := range summary.Notifications {
			counts[n.SenderID] = n.UnreadCount
		}
		assert.Equal(t, 3, counts[2])
		assert.Equal(t, 1, counts[3])
	})

	t.Run("snippet comes from newest message in group", func(t *testing.T) {
		long := strings.Repeat("x", 60)
		unread := []*mongo.Message{
			msgAt(2, 1, 10, "old short", consts.MessageStatusSent, base),
			msgAt(2, 1, 10, long, consts.MessageStatusSent, base.Add(time.Hour)),
		}

		summary := BuildUnreadSummary(unread)
		require.Len(t, summary.Notifications, 1)
		assert.Equal(t, strings.Repeat("x", 47)+"...", summary.Notifications[0].MessageSnippet)
		assert.Equal(t, base.Add(time.Hour), summary.Notifications[0].CreatedAt)
	})

	t.Run("notifications sorted newest first", func(t *testing.T) {
		unread := []*mongo.Message{
			msgAt(2, 1, 10, "old", consts.MessageStatusSent, base),
			msgAt(3, 1, 11, "new", consts.MessageStatusSent, base.Add(time.Hour)),
		}

		summary := BuildUnreadSummary(unread)
		require.Len(t, summary.Notifications, 2)
		assert.Equal(t, uint64(3), summary.Notifications[0].SenderID)
	})

	t.Run("empty input yields zero total", func(t *testing.T) {
		summary := BuildUnreadSummary(nil)
		assert.Zero(t, summary.TotalUnread)
		assert.Empty(t, summary.Notifications)
	})
}
