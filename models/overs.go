package models

import "math"

// BallsPerOver is the number of legal deliveries in an over
const BallsPerOver = 6

// Overs are stored as whole overs plus balls in the tenths digit: 4.3 means
// 4 overs and 3 balls, never 4 and 3/10 of an over. All over arithmetic must
// go through these helpers; repeatedly adding 1/6 as a float drifts and the
// tenths digit would no longer be a ball count.

// OversToBalls converts the encoded overs value to a total legal-ball count
func OversToBalls(overs float64) int {
	whole := int(overs)
	balls := int(math.Round((overs - float64(whole)) * 10))
	return whole*BallsPerOver + balls
}

// BallsToOvers converts a total legal-ball count to the encoded overs value
func BallsToOvers(balls int) float64 {
	return float64(balls/BallsPerOver) + float64(balls%BallsPerOver)/10
}

// AddLegalBall advances the encoded overs value by one legal delivery,
// rolling .5 -> next whole over on the sixth ball
func AddLegalBall(overs float64) float64 {
	return BallsToOvers(OversToBalls(overs) + 1)
}

// OversToDecimal converts the encoded overs value to a true decimal number
// of overs (4.3 encoded -> 4.5 decimal), used for rate calculations
func OversToDecimal(overs float64) float64 {
	return float64(OversToBalls(overs)) / BallsPerOver
}

// DeliveryOvers returns the encoded overs value an innings stands at once the
// given delivery has been bowled: ball 6 completes the over and rolls to the
// next whole over
func DeliveryOvers(overNumber, ballNumber int) float64 {
	if ballNumber >= BallsPerOver {
		return float64(overNumber + 1)
	}
	return float64(overNumber) + float64(ballNumber)/10
}
