package health

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type GetChatStatusFunc func() error

// Status is the JSON body returned by the health endpoint
type Status struct {
	IsReady  bool     `json:"isReady"`
	Message  string   `json:"message"`
	Channels []string `json:"channels"`
}

// Server reports whether we're connected to Twitch chat
type Server struct {
	getChatStatus GetChatStatusFunc
	channels      []string
}

func NewServer(getChatStatus GetChatStatusFunc, channels []string) *Server {
	return &Server{
		getChatStatus: getChatStatus,
		channels:      channels,
	}
}

func (s *Server) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	status := s.resolveStatus()
	res.Header().Set("content-type", "application/json")
	if !status.IsReady {
		res.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(res).Encode(status); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) resolveStatus() Status {
	channels := s.channels
	if channels == nil {
		channels = []string{}
	}
	if err := s.getChatStatus(); err != nil {
		return Status{
			IsReady:  false,
			Message:  fmt.Sprintf("Not connected to Twitch chat. (Error: %s)", err),
			Channels: channels,
		}
	}
	return Status{
		IsReady:  true,
		Message:  "Connected to Twitch chat.",
		Channels: channels,
	}
}
