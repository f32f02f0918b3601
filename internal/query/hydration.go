package query

import "encoding/json"

// StatusSuccess — единственный статус, который попадает в дегидрированное состояние.
const StatusSuccess = "success"

// DehydratedState — сериализуемый снимок кэша клиента.
type DehydratedState struct {
	Queries []DehydratedQuery `json:"queries"`
}

// DehydratedQuery — один закэшированный результат.
type DehydratedQuery struct {
	QueryKey Key        `json:"queryKey"`
	State    QueryState `json:"state"`
}

// QueryState хранит данные результата и время их получения (unix ms).
type QueryState struct {
	Data          json.RawMessage `json:"data"`
	DataUpdatedAt int64           `json:"dataUpdatedAt"`
	Status        string          `json:"status"`
}
