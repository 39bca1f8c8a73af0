package pkg

// enum of perception object class
type PerceptionType uint8

const (
	UNKNOWN_OBJECT PerceptionType = iota
	VEHICLE
	BICYCLE
	PEDESTRIAN
	UNKNOWN_MOVABLE
	UNKNOWN_UNMOVABLE
)

// enum of longitudinal decision already taken by an upstream task for an obstacle
type LongitudinalDecision uint8

const (
	DECISION_NONE LongitudinalDecision = iota
	DECISION_STOP
	DECISION_FOLLOW
	DECISION_YIELD
	DECISION_OVERTAKE
	DECISION_IGNORE
)

const (
	// expansion added to both length and width of every dynamic obstacle
	// footprint cached per evaluation time step, in meters
	DYNAMIC_OBSTACLE_LW_BUFFER = 0.5

	// samples closer than this to the ego start station skip the off-road
	// sweep check, numerical stabilization near the start
	OFFROAD_IGNORE_DISTANCE = 5.0

	// widening applied to the swept-footprint lane bound comparison, meters
	OFFROAD_BOUND_BUFFER = 0.1

	// lateral clearance under which a static obstacle contributes a
	// sigmoid proximity penalty, meters
	STATIC_SAFE_DISTANCE = 0.6

	// tolerance on the static longitudinal/lateral overlap (collision) test
	STATIC_OVERLAP_TOLERANCE = 0.1

	// normalizes the dynamic safety cost against the static magnitude
	DYNAMIC_OBSTACLE_COST_WEIGHT = 1e-6

	// weight of the second, softer sigmoid term discouraging close passing
	OBSTACLE_RISK_COST = 20.0
)

const (
	DEBUG = false
)
