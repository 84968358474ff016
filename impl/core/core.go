package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"LeadDesk/chat"
	"LeadDesk/entity"
	"LeadDesk/internal/config"
	"LeadDesk/internal/lib/sl"
	"LeadDesk/internal/ws"
)

type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)

	SaveChatMessage(ctx context.Context, msg entity.ChatMessage) error
	UpdateChatMessageStatus(ctx context.Context, sessionID, messageID, status string) error

	SaveLead(ctx context.Context, lead entity.Lead) error
	ListLeads(ctx context.Context, limit int) ([]entity.Lead, error)
}

type CrmService interface {
	SendLead(ctx context.Context, lead entity.Lead) (string, error)
}

type PropertyService interface {
	List(ctx context.Context, page, perPage int, filter entity.PropertyFilter) (*entity.PropertyPage, error)
	Get(ctx context.Context, id int64) (*entity.Property, error)
	Create(ctx context.Context, prop *entity.Property) (int64, error)
	Update(ctx context.Context, prop *entity.Property) error
	Delete(ctx context.Context, id int64) error
}

type LeadSender interface {
	Dispatch(ctx context.Context, sessionID string, lead entity.Lead)
	SendLead(lead entity.Lead) error
}

type SheetsService interface {
	AppendLead(ctx context.Context, lead entity.Lead) error
}

type Notifier interface {
	NotifyLead(lead entity.Lead) error
}

type PreviewResponder interface {
	Respond(ctx context.Context, path, userAgent string) (html string, ok bool, err error)
}

type Core struct {
	conf       *config.Config
	repo       Repository
	crm        CrmService
	properties PropertyService
	leadSender LeadSender
	sheets     SheetsService
	notifier   Notifier
	preview    PreviewResponder

	engine     *chat.Engine
	transcript *chat.Transcript
	sched      *chat.Scheduler
	messenger  chat.Messenger
	hub        *ws.Hub

	validate *validator.Validate
	authKey  string
	log      *slog.Logger
}

func New(conf *config.Config, log *slog.Logger) *Core {
	return &Core{
		conf:     conf,
		authKey:  conf.Listen.ApiKey,
		validate: validator.New(),
		log:      log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetCrmService(crm CrmService) {
	c.crm = crm
}

func (c *Core) SetPropertyService(properties PropertyService) {
	c.properties = properties
}

func (c *Core) SetLeadSender(sender LeadSender) {
	c.leadSender = sender
}

func (c *Core) SetSheetsService(sheets SheetsService) {
	c.sheets = sheets
}

func (c *Core) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

func (c *Core) SetPreviewResponder(preview PreviewResponder) {
	c.preview = preview
}

func (c *Core) SetChat(engine *chat.Engine, transcript *chat.Transcript, sched *chat.Scheduler, messenger chat.Messenger) {
	c.engine = engine
	c.transcript = transcript
	c.sched = sched
	c.messenger = messenger
}

func (c *Core) SetHub(hub *ws.Hub) {
	c.hub = hub
}

// Init starts the idle-session sweeper. Sessions abandoned without a
// close are torn down after the configured TTL, timers included.
func (c *Core) Init() {
	go func() {
		for {
			time.Sleep(time.Hour)

			cutoff := time.Now().Add(-c.conf.Chat.SessionTTL)
			ids, err := c.engine.IdleSessions(context.Background(), cutoff)
			if err != nil {
				c.log.With(sl.Err(err)).Error("list idle sessions")
				continue
			}
			for _, id := range ids {
				if err := c.CloseSession(context.Background(), id); err != nil {
					c.log.With(sl.Err(err), slog.String("session_id", id)).Error("sweep session")
				}
			}
			if len(ids) > 0 {
				c.log.With(slog.Int("count", len(ids))).Info("swept idle sessions")
			}
		}
	}()
}
