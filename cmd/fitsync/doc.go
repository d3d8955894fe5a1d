// Command fitsync uploads workout activities to Garmin Connect as manual
// activity entries.
//
// It is designed to be invoked from workflow automation (an n8n webhook
// relaying Fitbod workouts via Strava), so parsing of the raw duration,
// start-time, and type fields is forgiving: malformed values fall back to
// documented defaults rather than failing the run. A near-duplicate already
// present on the target day causes the upload to be skipped with a zero exit
// status.
package main
