package chi

import (
	"net/http"

	"github.com/bytedance/sonic"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// writeError renders every failure as 500 with the operation tag in front of the message.
func writeError(w http.ResponseWriter, tag string, err error) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "[" + tag + "] " + err.Error()})
}
