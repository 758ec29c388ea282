package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	if _, err := sendJSON(w, v); err != nil {
		log.WithField("response", v).WithError(err).Error("unable to send response")
	}
}

func sendErrorOrLog(w http.ResponseWriter, log *logrus.Logger, e error) {
	_, err := sendJSON(w, map[string]string{
		"error": e.Error(),
	})
	if err != nil {
		log.WithError(err).Error("unable to send error message")
	}
}

func badRequest(w http.ResponseWriter, log *logrus.Logger, e error) {
	w.WriteHeader(http.StatusBadRequest)
	sendErrorOrLog(w, log, e)
}

func notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

func unauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
}

func internalError(w http.ResponseWriter, log *logrus.Logger, msg string, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	log.WithError(err).Error(msg)
}
