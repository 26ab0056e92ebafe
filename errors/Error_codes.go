package errors

// ERR is the numeric error code carried by every *Error.
// Codes are grouped in ranges: 0-9 generic, 10-19 configuration,
// 20-29 wallet and keystore, 30-39 transaction, 50-59 service,
// 60-69 storage, 110-119 network.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONTEXT          ERR = 6
	ERR_CONTEXT_CANCELED ERR = 7
	ERR_ERROR            ERR = 9

	ERR_CONFIGURATION ERR = 10

	ERR_KEY_NOT_FOUND  ERR = 20
	ERR_SIGNING        ERR = 21
	ERR_NO_FUNDED_COIN ERR = 22

	ERR_TX_INVALID  ERR = 30
	ERR_TX_ERROR    ERR = 31
	ERR_TX_REJECTED ERR = 32

	ERR_SERVICE_UNAVAILABLE ERR = 50
	ERR_SERVICE_ERROR       ERR = 52

	ERR_STORAGE_UNAVAILABLE ERR = 60
	ERR_STORAGE_ERROR       ERR = 62

	ERR_NETWORK_ERROR              ERR = 110
	ERR_NETWORK_TIMEOUT            ERR = 111
	ERR_NETWORK_CONNECTION_REFUSED ERR = 112
	ERR_NETWORK_INVALID_RESPONSE   ERR = 113
)

var ERR_name = map[int32]string{
	0:   "UNKNOWN",
	1:   "INVALID_ARGUMENT",
	3:   "NOT_FOUND",
	4:   "PROCESSING",
	6:   "CONTEXT",
	7:   "CONTEXT_CANCELED",
	9:   "ERROR",
	10:  "CONFIGURATION",
	20:  "KEY_NOT_FOUND",
	21:  "SIGNING",
	22:  "NO_FUNDED_COIN",
	30:  "TX_INVALID",
	31:  "TX_ERROR",
	32:  "TX_REJECTED",
	50:  "SERVICE_UNAVAILABLE",
	52:  "SERVICE_ERROR",
	60:  "STORAGE_UNAVAILABLE",
	62:  "STORAGE_ERROR",
	110: "NETWORK_ERROR",
	111: "NETWORK_TIMEOUT",
	112: "NETWORK_CONNECTION_REFUSED",
	113: "NETWORK_INVALID_RESPONSE",
}

var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return "UNKNOWN"
}
