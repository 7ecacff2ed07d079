package handler

import (
	"github.com/morningcall/internal/alarm"
	"github.com/morningcall/internal/memo"
	"github.com/morningcall/internal/sound"
	"go.uber.org/zap"
)

// Previewer plays a short sample of a sound key.
type Previewer interface {
	Preview(key string) error
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	alarms    *alarm.Service
	responder *alarm.Responder
	sounds    *sound.Library
	previewer Previewer
	memos     *memo.Service
	logger    *zap.Logger
}

// NewAPI constructs a handler set with shared services.
func NewAPI(alarms *alarm.Service, responder *alarm.Responder, sounds *sound.Library, previewer Previewer, memos *memo.Service, logger *zap.Logger) *API {
	return &API{
		alarms:    alarms,
		responder: responder,
		sounds:    sounds,
		previewer: previewer,
		memos:     memos,
		logger:    logger,
	}
}
