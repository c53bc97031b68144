package frontserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MrPunder/spasibki-front/internal/logger"
)

type middlewareFunc func(next http.Handler) http.Handler

type FrontServer struct {
	Log        logger.Logger
	middlwares []middlewareFunc
	mux        http.Handler
	address    string

	mu     sync.Mutex
	server *http.Server
}

func NewFrontServer(adress string, mux http.Handler, Log logger.Logger) *FrontServer {
	return &FrontServer{
		address: adress,
		mux:     mux,
		Log:     Log,
	}
}

// AddMidleware добавляет обёртки, первая добавленная оказывается самой внутренней
func (fs *FrontServer) AddMidleware(funcs ...middlewareFunc) {
	fs.middlwares = append(fs.middlwares, funcs...)
}

func (fs *FrontServer) handler() http.Handler {
	handler := fs.mux
	for _, f := range fs.middlwares {
		handler = f(handler)
	}
	return handler
}

// RunServer блокирует до остановки сервера
func (fs *FrontServer) RunServer() error {
	ln, err := net.Listen("tcp", fs.address)
	if err != nil {
		fs.Log.Errorf("starting server on %s error: %s", fs.address, err)
		return err
	}
	return fs.Serve(ln)
}

// Serve обслуживает уже открытый listener
func (fs *FrontServer) Serve(ln net.Listener) error {
	fs.mu.Lock()
	fs.server = &http.Server{
		Handler:           fs.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := fs.server
	fs.mu.Unlock()

	fs.Log.Infof("Starting server on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fs.Log.Errorf("server on %s error: %s", ln.Addr(), err)
		return err
	}
	return nil
}

func (fs *FrontServer) Shutdown(ctx context.Context) error {
	fs.mu.Lock()
	srv := fs.server
	fs.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
