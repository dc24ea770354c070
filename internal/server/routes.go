package server

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const CapServiceName = "hockeycap.v1.CapService"

const CapServicePath = "/" + CapServiceName + "/"

const (
	ListTeamsProcedure       = CapServicePath + "ListTeams"
	GetTeamProcedure         = CapServicePath + "GetTeam"
	ImportContractsProcedure = CapServicePath + "ImportContracts"
	CreateSandboxProcedure   = CapServicePath + "CreateSandbox"
	GetSandboxProcedure      = CapServicePath + "GetSandbox"
	RemovePlayerProcedure    = CapServicePath + "RemovePlayer"
	RestorePlayerProcedure   = CapServicePath + "RestorePlayer"
	DiscardSandboxProcedure  = CapServicePath + "DiscardSandbox"
	AskExpertProcedure       = CapServicePath + "AskExpert"
	SearchPlayerProcedure    = CapServicePath + "SearchPlayer"
)

// CodecOption is the codec shared by the handler and its clients.
func CodecOption() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

// NewCapServiceHandler returns the path prefix the service is mounted on and
// the handler serving every procedure under it. Messages are plain Go
// structs, so only the json codec is accepted; other codecs are answered
// with CodeUnimplemented.
func NewCapServiceHandler(s *CapServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{CodecOption()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, s.ListTeams, opts...))
	mux.Handle(GetTeamProcedure, connect.NewUnaryHandler(GetTeamProcedure, s.GetTeam, opts...))
	mux.Handle(ImportContractsProcedure, connect.NewUnaryHandler(ImportContractsProcedure, s.ImportContracts, opts...))
	mux.Handle(CreateSandboxProcedure, connect.NewUnaryHandler(CreateSandboxProcedure, s.CreateSandbox, opts...))
	mux.Handle(GetSandboxProcedure, connect.NewUnaryHandler(GetSandboxProcedure, s.GetSandbox, opts...))
	mux.Handle(RemovePlayerProcedure, connect.NewUnaryHandler(RemovePlayerProcedure, s.RemovePlayer, opts...))
	mux.Handle(RestorePlayerProcedure, connect.NewUnaryHandler(RestorePlayerProcedure, s.RestorePlayer, opts...))
	mux.Handle(DiscardSandboxProcedure, connect.NewUnaryHandler(DiscardSandboxProcedure, s.DiscardSandbox, opts...))
	mux.Handle(AskExpertProcedure, connect.NewUnaryHandler(AskExpertProcedure, s.AskExpert, opts...))
	mux.Handle(SearchPlayerProcedure, connect.NewUnaryHandler(SearchPlayerProcedure, s.SearchPlayer, opts...))

	errWriter := connect.NewErrorWriter(opts...)
	return CapServicePath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if name := codecName(r.Header.Get("Content-Type")); name != jsonCodecName {
				err := connect.NewError(connect.CodeUnimplemented, fmt.Errorf("codec %q is not supported", name))
				_ = errWriter.Write(w, r, err)
				return
			}
		}
		mux.ServeHTTP(w, r)
	})
}

// codecName extracts the codec from a Connect, gRPC or gRPC-Web content
// type: "application/json" and "application/grpc+json" are both json, bare
// "application/grpc" is proto.
func codecName(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if _, codec, ok := strings.Cut(mediaType, "+"); ok {
		return codec
	}
	switch mediaType {
	case "application/grpc", "application/grpc-web":
		return "proto"
	}
	return strings.TrimPrefix(mediaType, "application/")
}

var procedures = map[string]bool{
	ListTeamsProcedure:       true,
	GetTeamProcedure:         true,
	ImportContractsProcedure: true,
	CreateSandboxProcedure:   true,
	GetSandboxProcedure:      true,
	RemovePlayerProcedure:    true,
	RestorePlayerProcedure:   true,
	DiscardSandboxProcedure:  true,
	AskExpertProcedure:       true,
	SearchPlayerProcedure:    true,
}

// PathLabel maps a request onto a bounded metrics label.
func PathLabel(r *http.Request) string {
	p := r.URL.Path
	switch {
	case procedures[p], p == "/metrics", p == "/healthz":
		return p
	case strings.HasPrefix(p, "/export/"):
		return "/export"
	}
	return "other"
}
