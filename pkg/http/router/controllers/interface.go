package controllers

import (
	"github.com/lintang-b-s/lattice-planner/pkg/http/usecases"
)

type PlanningService interface {
	PlanPath(cmd usecases.PlanCommand) (*usecases.PlanResult, error)
}
