package models

// Partnership is a derived batting-partnership segment rebuilt from the ball
// log. It is never persisted; reconstruction is deterministic and holds no
// state of its own.
type Partnership struct {
	Batsman1ID int64
	Batsman2ID int64
	Runs       int // all innings-credited runs while the pair batted, extras included
	Balls      int // legal deliveries faced during the stretch
	EndedBy    *string
}
