package web

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const wizardPath = "/wizard"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.session(r); !ok {
		sess := s.sessions.create()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		s.logger.Debug("session created", zap.String("session", sess.id))
	}
	http.Redirect(w, r, wizardPath, http.StatusSeeOther)
}

func (s *Server) handleWizard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderPage(w, sess, http.StatusOK, "")
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		http.Error(w, "session expired", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	if subtle.ConstantTimeCompare([]byte(r.PostForm.Get(csrfFieldName)), []byte(sess.csrf)) != 1 {
		s.logger.Warn("csrf token mismatch", zap.String("session", sess.id))
		http.Error(w, "invalid form token", http.StatusForbidden)
		return
	}
	act, err := parseAction(r.PostForm.Get("action"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wiz := sess.wizard
	if act.kind == actionReset {
		if err := wiz.Reset(); err != nil {
			s.renderPage(w, sess, http.StatusConflict, "A submission is in progress.")
			return
		}
		http.Redirect(w, r, wizardPath, http.StatusSeeOther)
		return
	}

	snap := wiz.Snapshot()
	if snap.Status != wizard.StatusIdle {
		s.renderPage(w, sess, http.StatusConflict, conflictNotice(snap.Status))
		return
	}
	if posted, _ := strconv.Atoi(r.PostForm.Get(stepFieldName)); posted != snap.Step {
		s.renderPage(w, sess, http.StatusConflict, "This form was out of date. Please check this step again.")
		return
	}
	step, _ := wizard.StepAt(snap.Step)
	if err := applyForm(wiz, step, r.PostForm); err != nil {
		s.renderPage(w, sess, statusFor(err), "Some values could not be saved: "+err.Error())
		return
	}

	switch act.kind {
	case actionNext:
		if !wiz.Advance() && snap.Step != wizard.ReviewStep {
			s.renderPage(w, sess, http.StatusUnprocessableEntity, "Please fix the highlighted fields.")
			return
		}
	case actionBack:
		wiz.Retreat()
	case actionEdit:
		if !wiz.GoTo(act.step) {
			http.Error(w, "cannot edit that step", http.StatusBadRequest)
			return
		}
	case actionSubmit:
		if err := s.submit(sess); err != nil {
			status := statusFor(err)
			notice := "Please fix the highlighted fields."
			if status == http.StatusConflict {
				notice = err.Error()
			}
			s.renderPage(w, sess, status, notice)
			return
		}
	}
	http.Redirect(w, r, wizardPath, http.StatusSeeOther)
}

// submit starts delivery in the background. The session shows the
// submitting state until the transport returns.
func (s *Server) submit(sess *session) error {
	done, err := sess.wizard.SubmitAsync(s.ctx)
	if err != nil {
		return err
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := <-done; err != nil {
			if errors.Is(err, context.Canceled) {
				s.logger.Info("submission cancelled", zap.String("session", sess.id))
				return
			}
			s.logger.Warn("submission failed", zap.String("session", sess.id), zap.Error(err))
			return
		}
		s.logger.Info("submission succeeded", zap.String("session", sess.id))
	}()
	return nil
}

type stateResponse struct {
	wizard.Snapshot
	Progress int `json:"progress"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	snap := sess.wizard.Snapshot()
	writeJSON(w, http.StatusOK, stateResponse{Snapshot: snap, Progress: snap.Progress()})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	s.openapiOnce.Do(func() {
		doc, err := schema.Document(r.Context())
		if err != nil {
			s.openapiErr = err
			return
		}
		s.openapi, s.openapiErr = schema.Marshal(doc, schema.FormatJSON)
	})
	if s.openapiErr != nil {
		s.logger.Error("openapi document", zap.Error(s.openapiErr))
		http.Error(w, "document unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) session(r *http.Request) (*session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	return s.sessions.get(cookie.Value)
}

func (s *Server) renderPage(w http.ResponseWriter, sess *session, status int, notice string) {
	snap := sess.wizard.Snapshot()
	step, _ := wizard.StepAt(snap.Step)

	data := pongo2.Context{
		"theme":       s.theme,
		"title":       step.Title,
		"step":        snap.Step,
		"stepCount":   snap.StepCount,
		"progress":    snap.Progress(),
		"steps":       buildSteps(snap.Step),
		"fields":      buildFields(step, snap),
		"isReview":    snap.IsReview(),
		"submitting":  snap.Status == wizard.StatusSubmitting,
		"succeeded":   snap.Status == wizard.StatusSucceeded,
		"submitError": snap.SubmitError,
		"formErrors":  snap.FormErrors,
		"notice":      notice,
		"hidden":      SortedHiddenFields(CSRFToken(sess.csrf), Hidden(stepFieldName, snap.Step)),
	}
	if snap.IsReview() {
		data["review"] = buildReview(snap.Record)
	}

	var buf bytes.Buffer
	if err := s.engine.render(&buf, "wizard.html", data); err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wizard.ErrUnknownField), errors.Is(err, wizard.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, wizard.ErrNotOnReviewStep):
		return http.StatusConflict
	case errors.Is(err, wizard.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func conflictNotice(status wizard.Status) string {
	if status == wizard.StatusSubmitting {
		return "A submission is in progress."
	}
	return "This form has already been submitted."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
