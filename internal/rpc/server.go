package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/news-publisher/internal/newsportal"
)

const appName = "news-publisher"

// New returns the JSON-RPC 2.0 server with the news service registered under "news".
func New(logger *slog.Logger, manager *newsportal.Manager) *zenrpc.Server {
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("news", NewNewsService(manager))
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, appName, nil))

	return rpcServer
}
