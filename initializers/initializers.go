package initializers

import (
	"context"

	"hr-platform-backend/config"
	"hr-platform-backend/fiberlog"
	approvalhandler "hr-platform-backend/lib/approval"
	balancehandler "hr-platform-backend/lib/balance"
	leavetypeprovider "hr-platform-backend/lib/dicts/leave-type"
	evaluationhandler "hr-platform-backend/lib/evaluation"
	xlsexport "hr-platform-backend/lib/export/xls"
	leavehandler "hr-platform-backend/lib/leave"
	notificationhandler "hr-platform-backend/lib/notification"
	notificationworker "hr-platform-backend/lib/notification/worker"
	overtimehandler "hr-platform-backend/lib/overtime"
	requisitionhandler "hr-platform-backend/lib/requisition"
	spaceauthhandler "hr-platform-backend/lib/space/auth"
	spacehandler "hr-platform-backend/lib/space/handler"
	pushhandler "hr-platform-backend/lib/space/push/handler"
	spaceusershander "hr-platform-backend/lib/space/users/hander"
	connectionhub "hr-platform-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	connectionhub.Init()
	spaceusershander.NewHandler()
	spacehandler.NewHandler()
	spaceauthhandler.NewHandler()
	pushhandler.NewHandler()
	leavetypeprovider.NewHandler()
	xlsexport.NewHandler()
	notificationhandler.NewHandler()
	balancehandler.NewHandler()
	leavehandler.NewHandler()
	overtimehandler.NewHandler()
	requisitionhandler.NewHandler()
	evaluationhandler.NewHandler()
	approvalhandler.NewHandler(
		leavehandler.NewAdapter(),
		overtimehandler.NewAdapter(),
		requisitionhandler.NewAdapter(),
		evaluationhandler.NewAdapter(),
	)
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача отправки уведомлений из исходящей очереди
	notificationworker.StartWorker(ctx)
}
