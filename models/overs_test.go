package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOversToBalls(t *testing.T) {
	assert.Equal(t, 0, OversToBalls(0))
	assert.Equal(t, 3, OversToBalls(0.3))
	assert.Equal(t, 6, OversToBalls(1.0))
	assert.Equal(t, 27, OversToBalls(4.3))
	assert.Equal(t, 119, OversToBalls(19.5))
}

func TestBallsToOvers(t *testing.T) {
	assert.Equal(t, 0.0, BallsToOvers(0))
	assert.Equal(t, 0.5, BallsToOvers(5))
	assert.Equal(t, 1.0, BallsToOvers(6))
	assert.Equal(t, 1.1, BallsToOvers(7))
	assert.Equal(t, 4.3, BallsToOvers(27))
}

func TestAddLegalBall(t *testing.T) {
	overs := 0.0
	for i := 0; i < 5; i++ {
		overs = AddLegalBall(overs)
	}
	assert.Equal(t, 0.5, overs)

	// sixth ball rolls to the next whole over
	overs = AddLegalBall(overs)
	assert.Equal(t, 1.0, overs)

	overs = AddLegalBall(overs)
	assert.Equal(t, 1.1, overs)
}

func TestAddLegalBall_NoFloatDrift(t *testing.T) {
	// a full T20 innings of repeated additions must land exactly on 20.0
	overs := 0.0
	for i := 0; i < 120; i++ {
		overs = AddLegalBall(overs)
	}
	assert.Equal(t, 20.0, overs)
}

func TestDeliveryOvers(t *testing.T) {
	assert.Equal(t, 0.1, DeliveryOvers(0, 1))
	assert.Equal(t, 0.5, DeliveryOvers(0, 5))
	assert.Equal(t, 1.0, DeliveryOvers(0, 6))
	assert.Equal(t, 5.0, DeliveryOvers(4, 6))
	assert.Equal(t, 12.4, DeliveryOvers(12, 4))
}

func TestOversToDecimal(t *testing.T) {
	assert.Equal(t, 0.5, OversToDecimal(0.3))
	assert.Equal(t, 4.5, OversToDecimal(4.3))
	assert.Equal(t, 1.0, OversToDecimal(1.0))
}
