package spectro

import (
	"fmt"

	"gocv.io/x/gocv"
)

// ExtractIntensity converts frame (BGR, BGRA or already gray) to grayscale
// and returns its middle row, leaving out the SENSOR_EDGE_ARTIFACT_COLUMNS
// rightmost columns. Other formats yield an empty series.
func ExtractIntensity(frame gocv.Mat) IntensitySeries {
	if frame.Empty() || frame.Type() != gocv.MatTypeCV8UC3 && frame.Type() != gocv.MatTypeCV8UC4 && frame.Type() != gocv.MatTypeCV8UC1 {
		WARNINGLogger.Printf("ExtractIntensity: unsupported frame type %v", frame.Type())
		return IntensitySeries{}
	}
	gray := gocv.NewMat()
	defer gray.Close()
	switch frame.Channels() {
	case 1:
		frame.CopyTo(&gray)
	case 4:
		gocv.CvtColor(frame, &gray, gocv.ColorBGRAToGray)
	default:
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	}

	halfway := gray.Rows() / 2
	width := gray.Cols() - SENSOR_EDGE_ARTIFACT_COLUMNS
	if width < 0 {
		width = 0
	}

	series := make(IntensitySeries, width)
	for i := range series {
		series[i] = int(gray.GetUCharAt(halfway, i))
	}
	return series
}

// CheckFrameSize fails when frame does not have the configured resolution.
func CheckFrameSize(frame gocv.Mat, width, height int) error {
	if frame.Cols() != width || frame.Rows() != height {
		return fmt.Errorf("unexpected frame size %dx%d, camera is configured for %dx%d", frame.Cols(), frame.Rows(), width, height)
	}
	return checkColorFrame(frame)
}

func checkColorFrame(frame gocv.Mat) error {
	if frame.Empty() {
		return fmt.Errorf("empty frame")
	}
	if frame.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("unexpected frame with %d channels of type %v, expected 8 bit BGR", frame.Channels(), frame.Type())
	}
	return nil
}
