package spectro

import (
	"time"

	"gocv.io/x/gocv"
)

// FrameSource supplies color frames. *gocv.VideoCapture satisfies it.
type FrameSource interface {
	IsOpened() bool
	Read(m *gocv.Mat) bool
}

type Options struct {
	FrameWidth  int
	FrameHeight int

	MinDist   int // minimum distance between peaks, in pixels
	Threshold int // percent of the frame maximum

	// Optional stages, both off in the reference setup. Smoothing is
	// skipped while peaks are held.
	Smoothing *SavitzkyGolay
	HoldPeaks bool
}

func DefaultOptions() Options {
	return Options{
		FrameWidth:  CAMERA_FRAME_WIDTH,
		FrameHeight: CAMERA_FRAME_HEIGHT,
		MinDist:     PEAK_MIN_DIST,
		Threshold:   PEAK_THRESHOLD,
	}
}

// Spectrometer runs capture cycles against a frame source it does not own.
type Spectrometer struct {
	source FrameSource
	cal    Calibration
	opts   Options
	hold   PeakHold
	now    func() time.Time
}

func NewSpectrometer(source FrameSource, cal Calibration, opts Options) *Spectrometer {
	return &Spectrometer{
		source: source,
		cal:    cal,
		opts:   opts,
		now:    time.Now,
	}
}

func (s *Spectrometer) Calibration() Calibration {
	return s.cal
}

// Capture reads one frame and turns it into a labelled spectrum graph.
// The returned frame must be closed by the caller.
func (s *Spectrometer) Capture() (*SpectralFrame, error) {
	if s.source == nil || !s.source.IsOpened() {
		ERRORLogger.Println("Capture: video source not opened")
		return nil, stageError(STAGE_CAPTURE, ErrSourceUnavailable, nil)
	}

	frame := gocv.NewMat()
	defer frame.Close()
	if ok := s.source.Read(&frame); !ok || frame.Empty() {
		ERRORLogger.Println("Capture: error reading a frame")
		return nil, stageError(STAGE_CAPTURE, ErrFrameReadFailed, nil)
	}
	if err := CheckFrameSize(frame, s.opts.FrameWidth, s.opts.FrameHeight); err != nil {
		ERRORLogger.Printf("Capture: %v", err)
		return nil, stageError(STAGE_CAPTURE, ErrFrameReadFailed, err)
	}

	return s.Process(frame)
}

// Process runs the pure part of the cycle on an already captured 8 bit BGR
// frame. Any other frame fails with ErrFrameReadFailed.
func (s *Spectrometer) Process(frame gocv.Mat) (*SpectralFrame, error) {
	if err := checkColorFrame(frame); err != nil {
		ERRORLogger.Printf("Process: %v", err)
		return nil, stageError(STAGE_CAPTURE, ErrFrameReadFailed, err)
	}

	series := ExtractIntensity(frame)
	switch {
	case s.opts.HoldPeaks:
		series = s.hold.Update(series)
	case s.opts.Smoothing != nil:
		series = s.opts.Smoothing.Smooth(series)
	}

	graph := RenderGraph(series, s.cal)
	peaks := DetectPeaks(series, s.cal, s.opts.MinDist, s.opts.Threshold)
	LabelPeaks(&graph, peaks)
	DEBUGLogger.Printf("Processed frame: %d columns, max %d, %d peaks", len(series), series.Max(), len(peaks))

	return &SpectralFrame{
		Image:       graph,
		Wavelengths: s.cal.Wavelengths(len(series)),
		Intensities: series,
		Peaks:       peaks,
		CapturedAt:  s.now(),
	}, nil
}
