package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/lattice-planner/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/lattice-planner/pkg/http/usecases"
	"go.uber.org/zap"
)

const maxRequestBytes = 1 << 20

type plannerAPI struct {
	planningService PlanningService
	log             *zap.Logger
}

func New(planningService PlanningService, log *zap.Logger) *plannerAPI {
	return &plannerAPI{
		planningService: planningService,
		log:             log,
	}
}

func (api *plannerAPI) Routes(group *helper.RouteGroup) {
	group.POST("/planPath", api.planPath)
}

func (api *plannerAPI) planPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request planPathRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("malformed request body: %w", err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	result, err := api.planningService.PlanPath(request.toCommand())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": newPlanPathResponse(result)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func translateError(err error, trans ut.Translator) []error {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	translated := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		translated = append(translated, errors.New(e.Translate(trans)))
	}
	return translated
}

func (api *plannerAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecases.ErrInvalidScenario):
		api.BadRequestResponse(w, r, err)
	case errors.Is(err, usecases.ErrNoFeasiblePath):
		api.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *plannerAPI) writeJSON(w http.ResponseWriter, status int, data envelope,
	headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(js)
	return nil
}

func (api *plannerAPI) errorResponse(w http.ResponseWriter, r *http.Request,
	status int, message interface{}) {
	env := envelope{"error": message}
	if err := api.writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *plannerAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *plannerAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err),
		zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError,
		"the server encountered a problem and could not process your request")
}
