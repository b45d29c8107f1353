package main

import (
	"net/http"

	"chatbot-backend/internal/api/handlers"
	"chatbot-backend/internal/app"
	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/service/llm"
	"chatbot-backend/internal/store"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	// In-memory entity store, seeded with the demo user
	st := store.NewMemStore()
	demoUser := st.SeedDemoData()
	logger.Log.WithFields(logrus.Fields{
		"user_id":  demoUser.ID,
		"username": demoUser.Username,
	}).Info("Seeded demo data")

	provider := llm.NewOpenRouterProvider(&cfg.LLM)
	appConfig := app.NewConfig(st, cfg)
	chatHandlers := handlers.NewChatHandlers(appConfig, provider)

	// Go 1.22+ routing with method and path-parameter patterns
	mux := http.NewServeMux()
	chatHandlers.Routes(mux)
	handler := handlers.CORS(handlers.RequestID(mux))

	logger.Log.WithFields(logrus.Fields{
		"port":  cfg.Server.Port,
		"model": cfg.LLM.Model,
	}).Info("Server starting")

	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		logger.Log.WithError(err).Fatal("Server failed to start")
	}
}
