package handler

import (
	"github.com/shadoomedia/chat-server/internal/app/chat"
	"github.com/shadoomedia/chat-server/internal/app/journal"
	"github.com/shadoomedia/chat-server/internal/configs"
)

// AppDeps carries the shared dependencies of the HTTP surface.
type AppDeps struct {
	Core    *chat.Core
	Journal *journal.Store
	Config  *configs.AppConfig
}
