package spectro

import (
	"os"
	"strconv"
)

const (
	CAMERA_FRAME_WIDTH  = 640
	CAMERA_FRAME_HEIGHT = 480

	// The picam shows a stripe on the right edge of every frame
	SENSOR_EDGE_ARTIFACT_COLUMNS = 4

	SENSOR_WIDTH = CAMERA_FRAME_WIDTH - SENSOR_EDGE_ARTIFACT_COLUMNS

	PREVIEW_WIDTH  = 320
	PREVIEW_HEIGHT = 240
)

var (
	CAMERA_DEVICE    = "0"
	CAMERA_FRAMERATE = 25

	PEAK_MIN_DIST  = 50 // minimum distance between peaks, in pixels
	PEAK_THRESHOLD = 20 // percent of the frame maximum

	SNAPSHOT_DIR = "."

	// Publishing is disabled while empty
	MQTT_BROKER = ""
)

func init() {
	if v := os.Getenv("CAMERA_DEVICE"); v != "" {
		CAMERA_DEVICE = v
	}
	CAMERA_FRAMERATE = envInt("CAMERA_FRAMERATE", CAMERA_FRAMERATE)
	PEAK_MIN_DIST = envInt("PEAK_MIN_DIST", PEAK_MIN_DIST)
	PEAK_THRESHOLD = envInt("PEAK_THRESHOLD", PEAK_THRESHOLD)
	if v := os.Getenv("SNAPSHOT_DIR"); v != "" {
		SNAPSHOT_DIR = v
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		MQTT_BROKER = v
	}
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		WARNINGLogger.Printf("Ignoring %s=%q: %v", name, v, err)
		return fallback
	}
	INFOLogger.Printf("Setting %s value provided in %s env variable: %d", name, name, n)
	return n
}
