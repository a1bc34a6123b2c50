package cli

var (
	RunSeed        = runSeed
	CreateAdmin    = createAdmin
	GetIndexConfig = getIndexConfig
)
