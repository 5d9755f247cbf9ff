package internal

import (
	"encoding/json"
	"fmt"
	"github.com/julienschmidt/httprouter"
	"hotelpay/config"
	"hotelpay/services"
	"io"
	"net"
	"net/http"
)

const (
	beginCheckout = "/checkout/:booking_ref"
	paymentNotify = "/payment/notify"
	paymentResult = "/payment/result"
)

// Gateway retry-stop convention: the callback endpoint answers HTTP 200
// with "1|OK" once the notification is accepted, "0|<reason>" otherwise.
const (
	notifyAccepted = "1|OK"
	notifyRejected = "0|%s"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	checkout   services.Checkout
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf: conf,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(beginCheckout, s.beginCheckout)
	router.POST(paymentNotify, s.paymentNotify)
	router.POST(paymentResult, s.paymentNotify)
}

func (s *Server) SetCheckoutService(checkout services.Checkout) {
	s.checkout = checkout
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) beginCheckout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	bookingRef := ps.ByName("booking_ref")
	if bookingRef == "" {
		s.logger.Warn(fmt.Sprintf("[%s] empty booking reference", reqID))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	form, err := s.checkout.BeginCheckout(ctx, bookingRef)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] checkout %s", reqID, bookingRef), err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(form); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] encode checkout form", reqID), err)
	}
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: get body", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// always answer 200 so the gateway stops retrying; the body tells it
	// whether the notification was accepted
	err = s.checkout.Notify(ctx, body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: process body", reqID), err)
		_, _ = fmt.Fprintf(w, notifyRejected, err.Error())
		return
	}
	_, _ = fmt.Fprint(w, notifyAccepted)
}
