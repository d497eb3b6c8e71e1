package rules

import "github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
