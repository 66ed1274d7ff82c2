package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clubswim/internal/meet/models"
	"clubswim/internal/meet/service"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/httputil"
	"clubswim/pkg/requestcontext"
)

type CompetitionService interface {
	List(ctx context.Context) ([]models.Competition, error)
	Add(ctx context.Context, in service.NewCompetition) (id.CompetitionID, error)
	Details(ctx context.Context, competitionID id.CompetitionID) (models.CompetitionDetails, error)
	Remove(ctx context.Context, competitionID id.CompetitionID, force bool) error
}

type ParticipantService interface {
	List(ctx context.Context) ([]models.Participant, error)
	Add(ctx context.Context, in service.NewParticipant) (id.ParticipantID, error)
	Details(ctx context.Context, participantID id.ParticipantID) (models.ParticipantDetails, error)
	Remove(ctx context.Context, participantID id.ParticipantID, force bool) error
	AvailableCompetitions(ctx context.Context, participantID id.ParticipantID) ([]models.Competition, error)
	Register(ctx context.Context, participantID id.ParticipantID, competitionID id.CompetitionID) (id.RegistrationID, error)
	Unregister(ctx context.Context, participantID id.ParticipantID, registrationID id.RegistrationID) error
}

type RegistrationService interface {
	Details(ctx context.Context, registrationID id.RegistrationID) (models.RegistrationDetails, error)
	AddResult(ctx context.Context, registrationID id.RegistrationID, result models.RegistrationResult) error
	RemoveResult(ctx context.Context, registrationID id.RegistrationID) error
}

type GroupService interface {
	List(ctx context.Context) ([]models.Group, error)
	Add(ctx context.Context, name string) (id.GroupID, error)
	Details(ctx context.Context, groupID id.GroupID) (models.GroupDetails, error)
}

type ScoreService interface {
	CompetitionScoreboard(ctx context.Context, competitionID id.CompetitionID) (models.CompetitionScoreboard, error)
	GroupScoreboard(ctx context.Context, groupID id.GroupID) (models.GroupScoreboard, error)
	ParticipantScoreboard(ctx context.Context, participantID id.ParticipantID) (models.ParticipantScoreboard, error)
	ParticipantsFinaPoints(ctx context.Context) ([]models.ParticipantFinaPoints, error)
}

// Services groups what the meet endpoints call into.
type Services struct {
	Competitions  CompetitionService
	Participants  ParticipantService
	Registrations RegistrationService
	Groups        GroupService
	Scores        ScoreService
}

// FromFacade adapts the service facade to the handler's ports.
func FromFacade(s *service.Services) Services {
	return Services{
		Competitions:  s.Competitions,
		Participants:  s.Participants,
		Registrations: s.Registrations,
		Groups:        s.Groups,
		Scores:        s.Scores,
	}
}

// Handler wires the meet endpoints to the meet services.
type Handler struct {
	services Services
	logger   *slog.Logger
}

func New(services Services, logger *slog.Logger) *Handler {
	return &Handler{services: services, logger: logger}
}

// Register mounts the meet endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/participants", func(r chi.Router) {
		r.Get("/", h.HandleListParticipants)
		r.Post("/", h.HandleAddParticipant)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleParticipantDetails)
			r.Delete("/", h.HandleRemoveParticipant)
			r.Get("/scoreboard", h.HandleParticipantScoreboard)
			r.Get("/registrations/available-competitions", h.HandleAvailableCompetitions)
			r.Post("/registrations", h.HandleRegister)
			r.Delete("/registrations/{registration_id}", h.HandleUnregister)
		})
	})
	r.Route("/competitions", func(r chi.Router) {
		r.Get("/", h.HandleListCompetitions)
		r.Post("/", h.HandleAddCompetition)
		r.Get("/{id}", h.HandleCompetitionDetails)
		r.Delete("/{id}", h.HandleRemoveCompetition)
		r.Get("/{id}/scoreboard", h.HandleCompetitionScoreboard)
	})
	r.Post("/results", h.HandleAddResult)
	r.Get("/results/{registration_id}", h.HandleRegistrationDetails)
	r.Delete("/results/{registration_id}", h.HandleRemoveResult)
	r.Route("/groups", func(r chi.Router) {
		r.Get("/", h.HandleListGroups)
		r.Post("/", h.HandleAddGroup)
		r.Get("/{id}", h.HandleGroupDetails)
		r.Get("/{id}/scoreboard", h.HandleGroupScoreboard)
	})
	r.Get("/scores/fina-points", h.HandleFinaPoints)
}

// respond writes v on success, or logs and maps err.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, v any, err error) {
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, "meet request failed",
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"status", httputil.StatusFor(err),
		"error", err,
	)
	httputil.WriteError(w, err)
}

func forceDelete(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("force_delete")
	if raw == "" {
		return false, nil
	}
	force, err := strconv.ParseBool(raw)
	if err != nil {
		return false, dErrors.New(dErrors.CodeBadRequest, "force_delete must be a boolean")
	}
	return force, nil
}

// =============================================================================
// Participants
// =============================================================================

func (h *Handler) HandleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.services.Participants.List(r.Context())
	h.respond(w, r, "list_participants", participants, err)
}

func (h *Handler) HandleAddParticipant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[AddParticipantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	participantID, err := h.services.Participants.Add(ctx, req.Parsed())
	if err != nil {
		h.fail(w, r, "add_participant", err)
		return
	}
	h.logger.InfoContext(ctx, "participant added",
		"request_id", requestID,
		"participant_id", participantID,
	)
	httputil.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: participantID.String()})
}

func (h *Handler) HandleParticipantDetails(w http.ResponseWriter, r *http.Request) {
	participantID, err := id.ParseParticipantID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "participant_details", err)
		return
	}
	details, err := h.services.Participants.Details(r.Context(), participantID)
	h.respond(w, r, "participant_details", details, err)
}

func (h *Handler) HandleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	participantID, err := id.ParseParticipantID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "remove_participant", err)
		return
	}
	force, err := forceDelete(r)
	if err != nil {
		h.fail(w, r, "remove_participant", err)
		return
	}
	if err := h.services.Participants.Remove(r.Context(), participantID, force); err != nil {
		h.fail(w, r, "remove_participant", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleParticipantScoreboard(w http.ResponseWriter, r *http.Request) {
	participantID, err := id.ParseParticipantID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "participant_scoreboard", err)
		return
	}
	board, err := h.services.Scores.ParticipantScoreboard(r.Context(), participantID)
	h.respond(w, r, "participant_scoreboard", board, err)
}

func (h *Handler) HandleAvailableCompetitions(w http.ResponseWriter, r *http.Request) {
	participantID, err := id.ParseParticipantID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "available_competitions", err)
		return
	}
	competitions, err := h.services.Participants.AvailableCompetitions(r.Context(), participantID)
	h.respond(w, r, "available_competitions", competitions, err)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	participantID, err := id.ParseParticipantID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	registrationID, err := h.services.Participants.Register(ctx, participantID, req.ParsedCompetitionID())
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}
	h.logger.InfoContext(ctx, "participant registered",
		"request_id", requestID,
		"participant_id", participantID,
		"competition_id", req.ParsedCompetitionID(),
		"registration_id", registrationID,
	)
	httputil.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: registrationID.String()})
}

func (h *Handler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	participantID, err := id.ParseParticipantID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "unregister", err)
		return
	}
	registrationID, err := id.ParseRegistrationID(chi.URLParam(r, "registration_id"))
	if err != nil {
		h.fail(w, r, "unregister", err)
		return
	}
	if err := h.services.Participants.Unregister(r.Context(), participantID, registrationID); err != nil {
		h.fail(w, r, "unregister", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Competitions
// =============================================================================

func (h *Handler) HandleListCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := h.services.Competitions.List(r.Context())
	h.respond(w, r, "list_competitions", competitions, err)
}

func (h *Handler) HandleAddCompetition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[AddCompetitionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	competitionID, err := h.services.Competitions.Add(ctx, req.Parsed())
	if err != nil {
		h.fail(w, r, "add_competition", err)
		return
	}
	h.logger.InfoContext(ctx, "competition added",
		"request_id", requestID,
		"competition_id", competitionID,
	)
	httputil.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: competitionID.String()})
}

func (h *Handler) HandleCompetitionDetails(w http.ResponseWriter, r *http.Request) {
	competitionID, err := id.ParseCompetitionID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "competition_details", err)
		return
	}
	details, err := h.services.Competitions.Details(r.Context(), competitionID)
	h.respond(w, r, "competition_details", details, err)
}

func (h *Handler) HandleRemoveCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := id.ParseCompetitionID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "remove_competition", err)
		return
	}
	force, err := forceDelete(r)
	if err != nil {
		h.fail(w, r, "remove_competition", err)
		return
	}
	if err := h.services.Competitions.Remove(r.Context(), competitionID, force); err != nil {
		h.fail(w, r, "remove_competition", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCompetitionScoreboard(w http.ResponseWriter, r *http.Request) {
	competitionID, err := id.ParseCompetitionID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "competition_scoreboard", err)
		return
	}
	board, err := h.services.Scores.CompetitionScoreboard(r.Context(), competitionID)
	h.respond(w, r, "competition_scoreboard", board, err)
}

// =============================================================================
// Results
// =============================================================================

func (h *Handler) HandleAddResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[AddResultRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.services.Registrations.AddResult(ctx, req.ParsedRegistrationID(), req.Result()); err != nil {
		h.fail(w, r, "add_result", err)
		return
	}
	h.logger.InfoContext(ctx, "result recorded",
		"request_id", requestID,
		"registration_id", req.ParsedRegistrationID(),
		"disqualified", req.Disqualified,
	)
	httputil.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: req.ParsedRegistrationID().String()})
}

func (h *Handler) HandleRegistrationDetails(w http.ResponseWriter, r *http.Request) {
	registrationID, err := id.ParseRegistrationID(chi.URLParam(r, "registration_id"))
	if err != nil {
		h.fail(w, r, "registration_details", err)
		return
	}
	details, err := h.services.Registrations.Details(r.Context(), registrationID)
	h.respond(w, r, "registration_details", details, err)
}

func (h *Handler) HandleRemoveResult(w http.ResponseWriter, r *http.Request) {
	registrationID, err := id.ParseRegistrationID(chi.URLParam(r, "registration_id"))
	if err != nil {
		h.fail(w, r, "remove_result", err)
		return
	}
	if err := h.services.Registrations.RemoveResult(r.Context(), registrationID); err != nil {
		h.fail(w, r, "remove_result", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Groups and scores
// =============================================================================

func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.services.Groups.List(r.Context())
	h.respond(w, r, "list_groups", groups, err)
}

func (h *Handler) HandleAddGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[AddGroupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	groupID, err := h.services.Groups.Add(ctx, req.Name)
	if err != nil {
		h.fail(w, r, "add_group", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: groupID.String()})
}

func (h *Handler) HandleGroupDetails(w http.ResponseWriter, r *http.Request) {
	groupID, err := id.ParseGroupID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "group_details", err)
		return
	}
	details, err := h.services.Groups.Details(r.Context(), groupID)
	h.respond(w, r, "group_details", details, err)
}

func (h *Handler) HandleGroupScoreboard(w http.ResponseWriter, r *http.Request) {
	groupID, err := id.ParseGroupID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "group_scoreboard", err)
		return
	}
	board, err := h.services.Scores.GroupScoreboard(r.Context(), groupID)
	h.respond(w, r, "group_scoreboard", board, err)
}

func (h *Handler) HandleFinaPoints(w http.ResponseWriter, r *http.Request) {
	totals, err := h.services.Scores.ParticipantsFinaPoints(r.Context())
	h.respond(w, r, "fina_points", totals, err)
}
