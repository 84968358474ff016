package leadcapture_test

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeadDesk/chat"
	"LeadDesk/chat/leadcapture"
	"LeadDesk/entity"
)

// fakeMessenger records sent texts per session, synchronously.
type fakeMessenger struct {
	mu    sync.Mutex
	texts map[string][]string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{texts: make(map[string][]string)}
}

func (f *fakeMessenger) SendText(sessionID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts[sessionID] = append(f.texts[sessionID], text)
	return nil
}

func (f *fakeMessenger) sent(sessionID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts[sessionID]...)
}

// fakeDispatcher captures dispatched leads.
type fakeDispatcher struct {
	mu    sync.Mutex
	leads []entity.Lead
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, sessionID string, lead entity.Lead) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, lead)
}

func (f *fakeDispatcher) dispatched() []entity.Lead {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Lead(nil), f.leads...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newEngine(t *testing.T, dispatcher leadcapture.LeadDispatcher) (*chat.Engine, *chat.MemoryStorage) {
	t.Helper()
	storage := chat.NewMemoryStorage()
	engine := chat.NewEngine(storage, discardLogger())
	engine.RegisterWorkflow(leadcapture.NewWorkflow(dispatcher, discardLogger()))
	return engine, storage
}

func TestStartSessionSendsGreeting(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	engine, _ := newEngine(t, dispatcher)
	m := newFakeMessenger()

	err := engine.StartSession(context.Background(), m, "s1", "contact_page", leadcapture.WorkflowID)
	require.NoError(t, err)

	sent := m.sent("s1")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "qual é o seu nome")
	assert.Empty(t, dispatcher.dispatched())
}

func TestFlowAdvancesOneStepPerAnswer(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	engine, storage := newEngine(t, dispatcher)
	m := newFakeMessenger()
	ctx := context.Background()

	require.NoError(t, engine.StartSession(ctx, m, "s1", "contact_page", leadcapture.WorkflowID))

	answers := []struct {
		text     string
		nextStep chat.StepID
	}{
		{"João", leadcapture.StepAskEmail},
		{"joao@gmail.com", leadcapture.StepAskPhone},
		{"47999998888", leadcapture.StepAskIntent},
	}

	for _, a := range answers {
		require.NoError(t, engine.HandleMessage(ctx, m, "s1", a.text))

		state, err := storage.Load(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, a.nextStep, state.CurrentStep)
	}

	// Greeting plus one prompt per answer.
	assert.Len(t, m.sent("s1"), 4)
	assert.Empty(t, dispatcher.dispatched(), "lead must not be dispatched before the last answer")
}

func TestCompletedFlowDispatchesLeadInStepOrder(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	engine, storage := newEngine(t, dispatcher)
	m := newFakeMessenger()
	ctx := context.Background()

	require.NoError(t, engine.StartSession(ctx, m, "s1", "contact_page", leadcapture.WorkflowID))
	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "João"))
	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "joao@gmail.com"))
	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "47999998888"))
	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "Quero saber sobre apartamentos frente mar"))

	leads := dispatcher.dispatched()
	require.Len(t, leads, 1)
	lead := leads[0]
	assert.Equal(t, "João", lead.Name)
	assert.Equal(t, "joao@gmail.com", lead.Email)
	assert.Equal(t, "47999998888", lead.Phone)
	assert.Equal(t, "Quero saber sobre apartamentos frente mar", lead.Message)
	assert.Equal(t, "contact_page", lead.Source)
	assert.False(t, lead.CreatedAt.IsZero())

	// The closing statement mentions the captured name.
	sent := m.sent("s1")
	require.NotEmpty(t, sent)
	assert.Contains(t, sent[len(sent)-1], "Perfeito, João!")

	completed, err := engine.IsCompleted(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, completed)

	state, err := storage.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, leadcapture.StepDone, state.CurrentStep)
}

func TestTerminalStepSwallowsInput(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	engine, _ := newEngine(t, dispatcher)
	m := newFakeMessenger()
	ctx := context.Background()

	require.NoError(t, engine.StartSession(ctx, m, "s1", "contact_page", leadcapture.WorkflowID))
	for _, text := range []string{"João", "joao@gmail.com", "47999998888", "casa"} {
		require.NoError(t, engine.HandleMessage(ctx, m, "s1", text))
	}

	before := len(m.sent("s1"))

	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "alguém aí?"))
	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "hello?"))

	assert.Len(t, m.sent("s1"), before, "terminal step must not reply")
	assert.Len(t, dispatcher.dispatched(), 1, "lead must be dispatched exactly once")
}

func TestCloseAndRestartYieldsFreshSession(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	engine, storage := newEngine(t, dispatcher)
	m := newFakeMessenger()
	ctx := context.Background()

	require.NoError(t, engine.StartSession(ctx, m, "s1", "contact_page", leadcapture.WorkflowID))
	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "João"))
	require.NoError(t, engine.HandleMessage(ctx, m, "s1", "joao@gmail.com"))

	require.NoError(t, engine.CloseSession(ctx, "s1"))

	exists, err := engine.SessionExists(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, exists)

	// A new session starts from the greeting with no leftover draft.
	require.NoError(t, engine.StartSession(ctx, m, "s2", "contact_page", leadcapture.WorkflowID))

	state, err := storage.Load(ctx, "s2")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, leadcapture.StepGreeting, state.CurrentStep)
	assert.Empty(t, state.GetString(leadcapture.KeyName))

	sent := m.sent("s2")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "qual é o seu nome")
}

func TestHandleMessageUnknownSession(t *testing.T) {
	engine, _ := newEngine(t, &fakeDispatcher{})
	m := newFakeMessenger()

	err := engine.HandleMessage(context.Background(), m, "nope", "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestDeepLinkEncodesDraftInStepOrder(t *testing.T) {
	lead := entity.Lead{
		Name:    "João",
		Email:   "joao@gmail.com",
		Phone:   "47999998888",
		Message: "Quero saber sobre apartamentos frente mar",
	}

	link := lead.DeepLink("5547988887777")
	require.True(t, strings.HasPrefix(link, "https://wa.me/5547988887777?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")

	nameIdx := strings.Index(text, "Nome: João")
	emailIdx := strings.Index(text, "E-mail: joao@gmail.com")
	phoneIdx := strings.Index(text, "Telefone: 47999998888")
	msgIdx := strings.Index(text, "Mensagem: Quero saber sobre apartamentos frente mar")

	require.GreaterOrEqual(t, nameIdx, 0)
	assert.Greater(t, emailIdx, nameIdx)
	assert.Greater(t, phoneIdx, emailIdx)
	assert.Greater(t, msgIdx, phoneIdx)
}
