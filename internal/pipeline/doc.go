// Package pipeline runs the single-pass sync flow for a normalized activity:
// check Garmin Connect for a near-duplicate on the same calendar day, then
// either skip or submit the manual activity.
//
// The duplicate check is deliberately conservative: any lookup failure is
// logged and treated as "no duplicate found" so a legitimate activity is never
// dropped silently. The only mutating call is the final create request.
package pipeline
