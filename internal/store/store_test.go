package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndGetUser(t *testing.T) {
	s := NewMemStore()

	user := s.CreateUser("demo_user", "demo@example.com")
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "demo_user", user.Username)
	assert.Equal(t, "demo@example.com", user.Email)
	assert.Equal(t, "user", user.Role)

	got, err := s.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = s.GetUser(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("demo_user", "demo@example.com")

	email := "new@example.com"
	updated, err := s.UpdateUser(user.ID, UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "user", updated.Role, "role must be untouched by an email-only update")

	role := "admin"
	updated, err = s.UpdateUser(user.ID, UserUpdate{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
	assert.Equal(t, "new@example.com", updated.Email)

	_, err = s.UpdateUser(99, UserUpdate{Role: &role})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIDAllocation_MonotonicPerKind(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")

	var convIDs []int64
	for i := 0; i < 5; i++ {
		convIDs = append(convIDs, s.CreateConversation(user.ID, "t").ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, convIDs)

	var msgIDs []int64
	for i := 0; i < 3; i++ {
		msg, err := s.CreateMessage(convIDs[0], RoleUser, "hello")
		require.NoError(t, err)
		msgIDs = append(msgIDs, msg.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, msgIDs)

	// Counters are independent per kind and never reused after deletion.
	require.True(t, s.DeleteConversation(convIDs[4]))
	assert.Equal(t, int64(6), s.CreateConversation(user.ID, "t").ID)
	assert.Equal(t, int64(2), s.CreateUser("v", "").ID)
}

func TestConcurrentCreates_UniqueIDs(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, "t")

	const workers = 50
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, err := s.CreateMessage(conv.ID, RoleUser, "hi")
			if err != nil {
				t.Error(err)
				return
			}
			ids <- msg.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate message ID %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestCreateConversation_Defaults(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")

	conv := s.CreateConversation(user.ID, "My chat")
	assert.Equal(t, user.ID, conv.UserID)
	assert.Equal(t, "My chat", conv.Title)
	assert.False(t, conv.IsPinned)
	assert.Equal(t, conv.CreatedAt, conv.UpdatedAt)
}

func TestGetConversations_OrderedByUpdatedAtDesc(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	other := s.CreateUser("v", "")

	c1 := s.CreateConversation(user.ID, "first")
	c2 := s.CreateConversation(user.ID, "second")
	c3 := s.CreateConversation(user.ID, "third")
	s.CreateConversation(other.ID, "not mine")

	convs := s.GetConversations(user.ID)
	require.Len(t, convs, 3)
	assert.Equal(t, []int64{c3.ID, c2.ID, c1.ID}, []int64{convs[0].ID, convs[1].ID, convs[2].ID})

	// Appending a message moves its conversation to the front.
	_, err := s.CreateMessage(c1.ID, RoleUser, "ping")
	require.NoError(t, err)
	convs = s.GetConversations(user.ID)
	assert.Equal(t, c1.ID, convs[0].ID)

	// So does a zero-field touch.
	_, err = s.UpdateConversation(c2.ID, ConversationUpdate{})
	require.NoError(t, err)
	convs = s.GetConversations(user.ID)
	assert.Equal(t, c2.ID, convs[0].ID)
}

func TestUpdateConversation_FieldsAndTouch(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, "before")

	title := "after"
	pinned := true
	updated, err := s.UpdateConversation(conv.ID, ConversationUpdate{Title: &title, IsPinned: &pinned})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.True(t, updated.IsPinned)
	assert.True(t, updated.UpdatedAt.After(conv.UpdatedAt))

	// A zero-field update still refreshes the timestamp.
	touched, err := s.UpdateConversation(conv.ID, ConversationUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "after", touched.Title)
	assert.True(t, touched.IsPinned)
	assert.True(t, touched.UpdatedAt.After(updated.UpdatedAt))

	_, err = s.UpdateConversation(404, ConversationUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteConversation_Cascades(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, "doomed")
	keep := s.CreateConversation(user.ID, "kept")

	for i := 0; i < 3; i++ {
		_, err := s.CreateMessage(conv.ID, RoleUser, "msg")
		require.NoError(t, err)
	}
	_, err := s.CreateMessage(keep.ID, RoleUser, "survivor")
	require.NoError(t, err)

	assert.True(t, s.DeleteConversation(conv.ID))
	assert.Empty(t, s.GetMessages(conv.ID))
	assert.Len(t, s.GetMessages(keep.ID), 1, "messages of other conversations must survive the cascade")

	_, err = s.GetConversation(conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.False(t, s.DeleteConversation(conv.ID), "second delete of the same ID reports false")
}

func TestCreateMessage_AutoTitle(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, DefaultTitle)

	_, err := s.CreateMessage(conv.ID, RoleUser, "Crude apa saja yang diolah pada bulan Mei 2025 ?")
	require.NoError(t, err)

	got, err := s.GetConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crude apa saja yang diola...", got.Title)

	// A second user message never retitles.
	_, err = s.CreateMessage(conv.ID, RoleUser, "And in June?")
	require.NoError(t, err)
	got, err = s.GetConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crude apa saja yang diola...", got.Title)
}

func TestCreateMessage_AutoTitleShortContent(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, DefaultTitle)

	_, err := s.CreateMessage(conv.ID, RoleUser, "hi")
	require.NoError(t, err)

	got, err := s.GetConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Title, "short content carries no ellipsis")
}

func TestCreateMessage_AssistantNeverRetitles(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, DefaultTitle)

	_, err := s.CreateMessage(conv.ID, RoleAssistant, "Hello! How can I help you today?")
	require.NoError(t, err)

	got, err := s.GetConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, got.Title)
}

func TestCreateMessage_CustomTitleUntouched(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, "Refinery questions")

	_, err := s.CreateMessage(conv.ID, RoleUser, "Crude apa saja yang diolah pada bulan Mei 2025 ?")
	require.NoError(t, err)

	got, err := s.GetConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Refinery questions", got.Title)
}

func TestCreateMessage_MissingConversation(t *testing.T) {
	s := NewMemStore()

	_, err := s.CreateMessage(7, RoleUser, "orphan")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.GetMessages(7))

	// Nothing was stored or allocated on the failed path.
	user := s.CreateUser("u", "")
	conv := s.CreateConversation(user.ID, "t")
	msg, err := s.CreateMessage(conv.ID, RoleUser, "first")
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
}

func TestGetMessages_AscendingAcrossInterleaving(t *testing.T) {
	s := NewMemStore()
	user := s.CreateUser("u", "")
	a := s.CreateConversation(user.ID, "a")
	b := s.CreateConversation(user.ID, "b")

	mustCreate := func(convID int64, content string) {
		t.Helper()
		_, err := s.CreateMessage(convID, RoleUser, content)
		require.NoError(t, err)
	}

	mustCreate(a.ID, "a1")
	mustCreate(b.ID, "b1")
	mustCreate(a.ID, "a2")
	mustCreate(b.ID, "b2")
	mustCreate(a.ID, "a3")

	msgs := s.GetMessages(a.ID)
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"a1", "a2", "a3"}, []string{msgs[0].Content, msgs[1].Content, msgs[2].Content})
	assert.True(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt))
	assert.True(t, msgs[1].CreatedAt.Before(msgs[2].CreatedAt))
}

func TestSeedDemoData(t *testing.T) {
	s := NewMemStore()
	user := s.SeedDemoData()

	require.NotNil(t, user)
	assert.Equal(t, "demo_user", user.Username)

	convs := s.GetConversations(user.ID)
	require.Len(t, convs, 1)
	assert.Equal(t, "Crude apa saja yang diola...", convs[0].Title)

	msgs := s.GetMessages(convs[0].ID)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
}
