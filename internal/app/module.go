package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/toomate/cashier/internal/app/api/server"
	"github.com/toomate/cashier/internal/app/service/change_queue"
	"github.com/toomate/cashier/internal/app/service/pause_removal"
	"github.com/toomate/cashier/internal/app/service/plan_catalog"
	"github.com/toomate/cashier/internal/platform/db"
	"github.com/toomate/cashier/internal/platform/events"
	"github.com/toomate/cashier/internal/platform/paypal"
	"github.com/toomate/cashier/internal/platform/redislock"
	"github.com/toomate/cashier/pkg/config"
	"github.com/toomate/cashier/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	paypal.Module,
	redislock.Module,
	events.Module,
	plan_catalog.Module,
	change_queue.Module,
	pause_removal.Module,
	server.Module,
)
