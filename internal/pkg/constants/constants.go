package constants

const (
	ViperEnvKey              = "env"
	ViperLogLevelKey         = "log.level"
	ViperHTTPAddrKey         = "http.addr"
	ViperAllowOriginsKey     = "http.allow_origins"
	ViperStoreDriverKey      = "store.driver"
	ViperPostgresDSNKey      = "postgres.dsn"
	ViperFirestoreProjectKey = "firestore.project_id"
	ViperFirestoreCredsKey   = "firestore.credentials_file"
	ViperRedisAddrKey        = "redis.addr"
	ViperRedisTTLKey         = "redis.ttl"
	ViperSchoolCollKey       = "collections.school"
	ViperVendorCollKey       = "collections.vendor"
	ViperVendorPriorityKey   = "vendors.priority"
	ViperVendorColorsKey     = "vendors.colors"
	ViperVendorDefColorKey   = "vendors.default_color"
	ViperUnitSuffixKey       = "calendar.unit_suffix"
	ViperSupplyAmountKey     = "invoice.supply_amount"
	ViperSecretKey           = "secret_key"
	ViperImportWorkersKey    = "import.workers"
)

const (
	StoreDriverPostgres  = "postgres"
	StoreDriverFirestore = "firestore"
	StoreDriverMemory    = "memory"
)

const (
	// AllVendors is the vendor filter value that disables filtering.
	AllVendors = "ALL"
	// AllVendorsKo is the Korean label for the same filter.
	AllVendorsKo = "전체"
)

const (
	CtxKeyRequestID     = "request_id"
	HeaderAuthorization = "Authorization"
	RoleAdmin           = "admin"
)

const (
	MIMECSV  = "text/csv; charset=utf-8"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
