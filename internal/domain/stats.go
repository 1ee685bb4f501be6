package domain

// Overview is the read-only rollup served by the stats endpoint. Event counts
// use effective statuses, so past approved events show up under Completed.
type Overview struct {
	EventsByStatus      map[EventStatus]int64 `json:"events_by_status"`
	EventsByDepartment  map[string]int64      `json:"events_by_department"`
	UsersByRole         map[string]int64      `json:"users_by_role"`
	TotalParticipations int64                 `json:"total_participations"`
}
