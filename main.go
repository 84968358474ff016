package main

import (
	"flag"
	"log/slog"

	"LeadDesk/bot"
	"LeadDesk/chat"
	"LeadDesk/chat/leadcapture"
	"LeadDesk/chat/widget"
	"LeadDesk/impl/core"
	"LeadDesk/internal/config"
	repository "LeadDesk/internal/database"
	"LeadDesk/internal/http-server/api"
	"LeadDesk/internal/lib/logger"
	"LeadDesk/internal/lib/sl"
	"LeadDesk/internal/service/crm"
	"LeadDesk/internal/service/leadsender"
	"LeadDesk/internal/service/preview"
	"LeadDesk/internal/service/property"
	"LeadDesk/internal/service/sheets"
	"LeadDesk/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
		} else {
			// Forward warnings and errors to the admin chat
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelWarn)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", slog.String("error", err.Error()))
				}
			}()
		}
	}

	lg.Info("starting leaddesk", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(conf, lg)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	hub := ws.NewHub(lg)
	go hub.Run()
	handler.SetHub(hub)

	// Chat machinery: transcripts, cancellable timers, the widget
	// messenger, and the lead-capture workflow itself.
	transcript := chat.NewTranscript()
	transcript.SetSink(handler)

	sched := chat.NewScheduler()

	messenger := widget.NewMessenger(transcript, sched, conf.Chat.TypingDelay)
	messenger.SetSink(handler)

	var storage chat.SessionStateStorage
	if db != nil {
		storage = chat.NewRepositoryStorage(db)
	} else {
		storage = chat.NewMemoryStorage()
		lg.Info("mongo disabled, chat sessions held in memory")
	}

	engine := chat.NewEngine(storage, lg)
	engine.RegisterWorkflow(leadcapture.NewWorkflow(handler, lg))
	handler.SetChat(engine, transcript, sched, messenger)

	leadSender := leadsender.NewService(conf, lg)
	leadSender.SetScheduler(sched)
	leadSender.SetRedirectSink(handler)
	handler.SetLeadSender(leadSender)

	crmService := crm.NewService(conf, lg)
	if crmService != nil {
		handler.SetCrmService(crmService)
		lg.With(
			slog.String("url", conf.CRM.BaseURL),
			sl.Secret("client_id", conf.CRM.ClientId),
		).Info("crm service initialized")
	}

	propertyService := property.NewService(conf, lg)
	if propertyService != nil {
		handler.SetPropertyService(propertyService)
		handler.SetPreviewResponder(preview.NewResponder(propertyService, conf.Site.Name, conf.Site.WebURL, lg))
		lg.With(
			slog.String("url", conf.Automation.BaseURL),
		).Info("property service initialized")
	}

	sheetsService := sheets.NewService(conf, lg)
	if sheetsService != nil {
		handler.SetSheetsService(sheetsService)
		lg.Debug("sheets service initialized")
	}

	if tgBot != nil {
		handler.SetNotifier(tgBot)
	}

	handler.Init()

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
