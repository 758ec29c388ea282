package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sweepcore/sweepd/internal/config"
	"github.com/sweepcore/sweepd/internal/middleware"
	"github.com/sweepcore/sweepd/internal/session"
)

const (
	sessionTTL    = time.Hour
	pruneInterval = 5 * time.Minute
)

type App struct {
	log    *logrus.Logger
	addr   string
	router *http.ServeMux
	store  *session.Store
	tokens *config.Tokens
	ws     *config.WebSocket
}

func New(log *logrus.Logger, addr string) *App {
	return &App{
		log:    log,
		addr:   addr,
		router: http.NewServeMux(),
		store:  session.NewStore(sessionTTL),
	}
}

func (a *App) Start(ctx context.Context) error {
	tokens, err := config.NewTokens()
	if err != nil {
		return err
	}
	a.tokens = tokens

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.loadRoutes()

	server := &http.Server{
		Addr: a.addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Auth(a.log, a.tokens),
			middleware.Logging(a.log),
		),
	}

	a.log.Infof("ready to serve @ %s", a.addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case now := <-ticker.C:
				if dropped := a.store.Prune(now); dropped > 0 {
					a.log.WithFields(logrus.Fields{
						"dropped": dropped,
						"kept":    a.store.Count(),
					}).Info("pruned idle sessions")
				}
			}
		}
	})

	return g.Wait()
}
