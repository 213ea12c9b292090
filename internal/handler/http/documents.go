package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// collectionRoute describes a collection addressed by server-assigned ids.
type collectionRoute struct {
	collection models.Collection
	// key is the reply envelope key of a single document
	key string
	// listKey is the reply key of a listing
	listKey string
	label   string
}

var collectionRoutes = []collectionRoute{
	{collection: models.CollectionWorkouts, key: "workout", listKey: "workouts", label: "Workout"},
	{collection: models.CollectionNutrition, key: "nutrition", listKey: "nutrition", label: "Nutrition entry"},
	{collection: models.CollectionGoals, key: "goal", listKey: "goals", label: "Goal"},
	{collection: models.CollectionCustomWorkouts, key: "workout", listKey: "workouts", label: "Custom workout"},
}

func (c collectionRoute) path() string {
	return "/api/" + string(c.collection)
}

func (h *Handler) createDocument(route collectionRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := collectionLogger(r, route.collection)

		ownerID, fields, ok := decodeDocumentRequest(w, r, l)
		if !ok {
			return
		}

		doc, created, err := h.services.DocumentService.Create(ctx, ownerID, route.collection, fields)
		if err != nil {
			writeServiceError(w, l, err, "error creating document")
			return
		}

		status, verb := http.StatusCreated, "created"
		if !created {
			status, verb = http.StatusOK, "updated"
		}
		utils.WriteJSON(w, map[string]any{
			"message": route.label + " " + verb + " successfully",
			route.key: doc.Flatten(),
		}, status)
	}
}

func (h *Handler) updateDocument(route collectionRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := collectionLogger(r, route.collection)

		ownerID, fields, ok := decodeDocumentRequest(w, r, l)
		if !ok {
			return
		}

		doc, err := h.services.DocumentService.Update(ctx, ownerID, route.collection, chi.URLParam(r, "id"), fields)
		if err != nil {
			writeServiceError(w, l, err, "error updating document")
			return
		}

		utils.WriteJSON(w, map[string]any{
			"message": route.label + " updated successfully",
			route.key: doc.Flatten(),
		}, http.StatusOK)
	}
}

func (h *Handler) deleteDocument(route collectionRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := collectionLogger(r, route.collection)

		ownerID, ok := ownerFromRequest(w, r, l)
		if !ok {
			return
		}

		if err := h.services.DocumentService.Delete(ctx, ownerID, route.collection, chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, l, err, "error deleting document")
			return
		}

		utils.WriteJSON(w, map[string]any{"message": route.label + " deleted successfully"}, http.StatusOK)
	}
}

func (h *Handler) listDocuments(route collectionRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := logger.FromRequest(r)

		ownerID, ok := ownerFromRequest(w, r, l)
		if !ok {
			return
		}

		docs, err := h.services.DocumentService.List(ctx, ownerID, route.collection)
		if err != nil {
			writeServiceError(w, l, err, "error listing documents")
			return
		}

		flat := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			flat = append(flat, doc.Flatten())
		}
		utils.WriteJSON(w, map[string]any{"count": len(flat), route.listKey: flat}, http.StatusOK)
	}
}

func (h *Handler) putDailyActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, fields, ok := decodeDocumentRequest(w, r, log)
	if !ok {
		return
	}

	doc, err := h.services.DocumentService.PutDailyActivity(ctx, ownerID, chi.URLParam(r, "ownerId"), chi.URLParam(r, "date"), fields)
	if err != nil {
		writeServiceError(w, log, err, "error updating daily activity")
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message":  "Daily activity updated successfully",
		"activity": doc.Flatten(),
	}, http.StatusOK)
}

func (h *Handler) putProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, fields, ok := decodeDocumentRequest(w, r, log)
	if !ok {
		return
	}

	doc, err := h.services.DocumentService.PutProfile(ctx, ownerID, chi.URLParam(r, "ownerId"), fields)
	if err != nil {
		writeServiceError(w, log, err, "error updating profile")
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message": "User updated successfully",
		"user":    doc.Flatten(),
	}, http.StatusOK)
}

func collectionLogger(r *http.Request, c models.Collection) *logger.Logger {
	return &logger.Logger{Logger: logger.FromRequest(r).With().Str("collection", string(c)).Logger()}
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request, log *logger.Logger) (string, bool) {
	ownerID, found := utils.GetOwnerIDFromContext(r.Context())
	if !found {
		log.Error().Msg("no owner id in request context")
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "No token provided")
		return "", false
	}
	return ownerID, true
}

// decodeDocumentRequest reads the owner id from the context and the JSON
// object body. It writes the error reply itself and reports false on failure.
func decodeDocumentRequest(w http.ResponseWriter, r *http.Request, log *logger.Logger) (string, map[string]any, bool) {
	ownerID, ok := ownerFromRequest(w, r, log)
	if !ok {
		return "", nil, false
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON was passed")
		return "", nil, false
	}

	return ownerID, fields, true
}
