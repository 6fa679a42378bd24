// Package workers runs the background maintenance loops: the expired-token
// reaper and log rotation. Both are fully decoupled from request handling.
package workers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jabney/pizza-api/logs"
	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/storage"
)

type Workers struct {
	store *storage.Store
	logs  *logs.Logs
	cron  *cron.Cron
	log   *logrus.Entry
}

func New(store *storage.Store, lg *logs.Logs) *Workers {
	return &Workers{
		store: store,
		logs:  lg,
		cron:  cron.New(),
		log:   logrus.WithField("component", "workers"),
	}
}

// Start runs an immediate token sweep, then schedules the hourly sweep and
// the daily log rotation.
func (w *Workers) Start() error {
	w.RemoveExpiredTokens()

	if _, err := w.cron.AddFunc("@every 1h", w.RemoveExpiredTokens); err != nil {
		return err
	}
	if _, err := w.cron.AddFunc("@daily", w.RotateLogs); err != nil {
		return err
	}

	w.cron.Start()
	w.log.Info("background workers started")
	return nil
}

// Stop halts the schedule. Entries already running are left to finish.
func (w *Workers) Stop() {
	w.cron.Stop()
}

// RemoveExpiredTokens sweeps the token collection and deletes every expired
// entry. A token that disappears between listing and deletion counts as
// swept, not as a failure.
func (w *Workers) RemoveExpiredTokens() {
	ids, err := models.ListTokens(w.store)
	if err != nil {
		w.log.WithError(err).Error("listing tokens failed")
		return
	}

	for _, id := range ids {
		token, err := models.LoadToken(w.store, id)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				w.log.WithError(err).WithField("token", id).Error("loading token failed")
			}
			continue
		}
		if token.Verify() {
			continue
		}

		if err := token.Delete(w.store); err != nil && !errors.Is(err, storage.ErrNotFound) {
			w.log.WithError(err).WithField("token", id).Error("deleting token failed")
			continue
		}
		w.logDeletion(token)
	}
}

// RotateLogs compresses and truncates the log files.
func (w *Workers) RotateLogs() {
	if err := w.logs.Rotate(); err != nil {
		w.log.WithError(err).Error("log rotation failed")
	}
}

func (w *Workers) logDeletion(token *models.Token) {
	entry, err := json.Marshal(struct {
		Token     *models.Token `json:"token"`
		Timestamp int64         `json:"timestamp"`
	}{token, time.Now().UnixMilli()})
	if err != nil {
		return
	}
	if err := w.logs.Append(token.ID, string(entry)); err != nil {
		w.log.WithError(err).WithField("token", token.ID).Warn("writing sweep log failed")
	}
}
