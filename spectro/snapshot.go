package spectro

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gocv.io/x/gocv"
)

const SNAPSHOT_TIME_LAYOUT = "02-01-2006-15:04:05"

var csvHeader = []string{"Wavelength", "Intensity"}

type Snapshot struct {
	ImagePath string
	DataPath  string
}

func SnapshotNames(t time.Time) (image, data string) {
	stamp := t.Format(SNAPSHOT_TIME_LAYOUT)
	return "FF-spectrum-" + stamp + ".jpg", "FF-" + stamp + ".csv"
}

// WriteSnapshot stores the graph as JPEG and the series as CSV in dir.
// Either both files end up on disk or neither does.
func WriteSnapshot(dir string, frame *SpectralFrame) (Snapshot, error) {
	imageName, dataName := SnapshotNames(frame.CapturedAt)
	snap := Snapshot{
		ImagePath: filepath.Join(dir, imageName),
		DataPath:  filepath.Join(dir, dataName),
	}

	tmpImage := filepath.Join(dir, ".tmp-"+imageName)
	if ok := gocv.IMWrite(tmpImage, frame.Image); !ok {
		os.Remove(tmpImage)
		return Snapshot{}, stageError(STAGE_SNAPSHOT, ErrWriteFailed, fmt.Errorf("imwrite %s failed", tmpImage))
	}

	tmpData, err := writeTempCSV(dir, frame.Wavelengths, frame.Intensities)
	if err != nil {
		os.Remove(tmpImage)
		return Snapshot{}, stageError(STAGE_SNAPSHOT, ErrWriteFailed, err)
	}

	if err := os.Rename(tmpImage, snap.ImagePath); err != nil {
		os.Remove(tmpImage)
		os.Remove(tmpData)
		return Snapshot{}, stageError(STAGE_SNAPSHOT, ErrWriteFailed, err)
	}
	if err := os.Rename(tmpData, snap.DataPath); err != nil {
		os.Remove(snap.ImagePath)
		os.Remove(tmpData)
		return Snapshot{}, stageError(STAGE_SNAPSHOT, ErrWriteFailed, err)
	}

	INFOLogger.Println("Written image", snap.ImagePath)
	INFOLogger.Println("Written data file", snap.DataPath)
	return snap, nil
}

func writeTempCSV(dir string, wavelengths []float64, intensities IntensitySeries) (string, error) {
	f, err := os.CreateTemp(dir, ".tmp-FF-*.csv")
	if err != nil {
		return "", err
	}
	if err := WriteSpectrumCSV(f, wavelengths, intensities); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// WriteSpectrumCSV writes the "Wavelength,Intensity" table with CRLF line
// endings, wavelengths rounded to 0.1nm.
func WriteSpectrumCSV(w io.Writer, wavelengths []float64, intensities IntensitySeries) error {
	if len(wavelengths) != len(intensities) {
		return fmt.Errorf("%d wavelengths for %d intensities", len(wavelengths), len(intensities))
	}
	csvW := csv.NewWriter(w)
	csvW.UseCRLF = true
	csvW.Write(csvHeader)
	for i, wl := range wavelengths {
		csvW.Write([]string{
			strconv.FormatFloat(wl, 'f', 1, 64),
			strconv.Itoa(intensities[i]),
		})
	}
	csvW.Flush()
	return csvW.Error()
}

// ReadSpectrumCSV parses a table written by WriteSpectrumCSV.
func ReadSpectrumCSV(r io.Reader) ([]float64, IntensitySeries, error) {
	csvR := csv.NewReader(r)
	csvR.FieldsPerRecord = len(csvHeader)
	header, err := csvR.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	if header[0] != csvHeader[0] || header[1] != csvHeader[1] {
		return nil, nil, fmt.Errorf("unexpected header %v", header)
	}

	var (
		wavelengths []float64
		intensities IntensitySeries
	)
	for {
		record, err := csvR.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		wl, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("wavelength %q: %w", record[0], err)
		}
		v, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, nil, fmt.Errorf("intensity %q: %w", record[1], err)
		}
		wavelengths = append(wavelengths, wl)
		intensities = append(intensities, v)
	}
	return wavelengths, intensities, nil
}
