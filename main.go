package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-ff-spectrometer/spectro"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatal(err)
	}
}

// run owns every resource of the session and releases it before main exits.
func run(args []string) error {
	flags := flag.NewFlagSet("ffspectro", flag.ContinueOnError)
	modeFlag := flags.String("mode", "once", "once, preview, live or plot")
	deviceFlag := flags.String("device", spectro.CAMERA_DEVICE, "Camera index or video file")
	outFlag := flags.String("out", spectro.SNAPSHOT_DIR, "Snapshot directory")
	brokerFlag := flags.String("mqtt", spectro.MQTT_BROKER, "MQTT broker to publish snapshots to (empty: disabled)")
	minDistFlag := flags.Int("min-dist", spectro.PEAK_MIN_DIST, "Minimum distance between peaks (pixels)")
	threshFlag := flags.Int("thresh", spectro.PEAK_THRESHOLD, "Peak threshold (percent of the maximum)")
	smoothFlag := flags.Bool("smooth", false, "Apply Savitzky-Golay smoothing")
	smoothWindowFlag := flags.Int("smooth-window", spectro.SAVGOL_DEFAULT_WINDOW, "Smoothing window length")
	smoothOrderFlag := flags.Int("smooth-order", spectro.SAVGOL_DEFAULT_ORDER, "Smoothing polynomial order")
	averageFlag := flags.Int("average", 0, "Average this many frames per capture (0: disabled)")
	holdFlag := flags.Bool("hold", false, "Hold peaks across frames (live mode)")
	csvFlag := flags.String("csv", "", "Data file to chart (plot mode)")
	chartFlag := flags.String("chart", "", "Chart output file (plot mode, default: <csv>.png)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	mode := strings.ToLower(*modeFlag)
	if mode == "plot" {
		return plotCSV(*csvFlag, *chartFlag)
	}

	opts := spectro.DefaultOptions()
	opts.MinDist = *minDistFlag
	opts.Threshold = *threshFlag
	opts.HoldPeaks = *holdFlag
	if *smoothFlag {
		sg, err := spectro.NewSavitzkyGolay(*smoothWindowFlag, *smoothOrderFlag)
		if err != nil {
			return err
		}
		opts.Smoothing = sg
	}

	vid, err := spectro.OpenCamera(*deviceFlag)
	if err != nil {
		return fmt.Errorf("error in opening camera: %w", err)
	}
	defer vid.Close()

	var source spectro.FrameSource = vid
	if *averageFlag > 0 {
		avg := spectro.NewAveragingSource(vid)
		avg.Samples = *averageFlag
		source = avg
	}
	s := spectro.NewSpectrometer(source, spectro.DefaultCalibration, opts)

	var frame *spectro.SpectralFrame
	switch mode {
	case "once":
		frame, err = s.Capture()
	case "preview":
		preview, perr := spectro.PreviewFrame(vid)
		if perr != nil {
			spectro.ERRORLogger.Printf("Error in capture the frame: %v", perr)
		} else {
			spectro.INFOLogger.Printf("Frame captured %dx%d", preview.Cols(), preview.Rows())
			spectro.ShowImage("Captured image", preview)
		}
		preview.Close()
		frame, err = s.Capture()
	case "live":
		frame, err = spectro.LivePreview(s, "Spectrum")
	default:
		err = fmt.Errorf("unsupported mode %q", mode)
	}
	if err != nil {
		return err
	}
	defer frame.Close()

	for _, p := range frame.Peaks {
		spectro.INFOLogger.Printf("Peak at %dnm (column %d, intensity %d)", p.WavelengthNm, p.PixelIndex, p.Intensity)
	}

	if _, err := spectro.WriteSnapshot(*outFlag, frame); err != nil {
		return err
	}

	if *brokerFlag != "" {
		client, err := spectro.NewMQTTClient(*brokerFlag)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		if err := spectro.NewPublisher(client).PublishFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

func plotCSV(csvPath, chartPath string) error {
	if csvPath == "" {
		return fmt.Errorf("plot mode needs -csv")
	}
	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	wavelengths, intensities, err := spectro.ReadSpectrumCSV(f)
	if err != nil {
		return fmt.Errorf("%s: %w", csvPath, err)
	}
	if chartPath == "" {
		chartPath = strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".png"
	}
	if err := spectro.PlotSpectrum(chartPath, filepath.Base(csvPath), wavelengths, intensities); err != nil {
		return err
	}
	spectro.INFOLogger.Println("Written chart", chartPath)
	return nil
}

func fatal(err error) {
	spectro.ERRORLogger.Println(err)
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
