// Package jsonfile reads recorded session dumps written by the
// telemetry exporter. A dump is one JSON document (optionally gzip
// compressed) holding event meta data, per entity lap fragments,
// weather, track status and a reference lap.
package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cast"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
	"github.com/mpapenbr/f1replay-engine-go/pkg/utils"
)

type (
	Option func(*Source)
	// Source implements provider.SessionSource on top of dump files.
	// With a pinned file the selector is ignored and the dump decides
	// the session identity, otherwise the file is resolved below dir
	// as <year>_<round>_<sessionType>.json[.gz].
	Source struct {
		dir  string
		file string
		l    *log.Logger
	}
)

func WithDir(arg string) Option {
	return func(s *Source) {
		s.dir = arg
	}
}

func WithFile(arg string) Option {
	return func(s *Source) {
		s.file = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(s *Source) {
		s.l = arg
	}
}

func New(opts ...Option) *Source {
	ret := &Source{
		l: log.Default().Named("provider"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

//nolint:whitespace // can't make both editor and linter happy
func (s *Source) Load(_ context.Context, sel provider.SessionSelector) (
	*provider.RawSession, error,
) {
	fileName := s.file
	if fileName == "" {
		fileName = filepath.Join(s.dir,
			fmt.Sprintf("%d_%02d_%s.json", sel.Year, sel.Round, sel.SessionType))
		if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
			fileName += ".gz"
		}
	}
	data, err := readFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", provider.ErrSessionNotFound, fileName)
		}
		return nil, err
	}
	ret, err := s.decodeSession(data)
	if err != nil {
		return nil, err
	}
	s.l.Debug("session dump loaded",
		log.String("file", fileName),
		log.Int("entities", len(ret.Entities)))
	return ret, nil
}

func readFile(fileName string) ([]byte, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(fileName, ".gz") {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("corrupt dump %s: %w", fileName, err)
		}
		defer gz.Close()
		return io.ReadAll(gz)
	}
	return data, nil
}

// dump layout as written by the exporter. Scalars that vary in type
// between exporter versions (bool vs number) are decoded tolerantly.
//
//nolint:govet // field order mirrors the dump
type (
	sessionDump struct {
		ExporterVersion string         `json:"exporterVersion"`
		Event           eventDump      `json:"event"`
		Entities        []entityDump   `json:"entities"`
		Weather         []weatherDump  `json:"weather"`
		TrackStatus     []statusDump   `json:"trackStatus"`
		ReferenceLap    *fragmentDump  `json:"referenceLap"`
		QualiLaps       []qualiLapDump `json:"qualiLaps"`
	}
	eventDump struct {
		Year        int    `json:"year"`
		Round       int    `json:"round"`
		Name        string `json:"name"`
		Location    string `json:"location"`
		SessionType string `json:"sessionType"`
	}
	entityDump struct {
		Code      string         `json:"code"`
		Color     string         `json:"color"`
		Fragments []fragmentDump `json:"fragments"`
	}
	fragmentDump struct {
		Lap      int          `json:"lap"`
		Compound string       `json:"compound"`
		Samples  []sampleDump `json:"samples"`
	}
	sampleDump struct {
		T        float64 `json:"t"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
		Dist     float64 `json:"dist"`
		RelDist  float64 `json:"relDist"`
		Speed    float64 `json:"speed"`
		Gear     any     `json:"gear"`
		DRS      any     `json:"drs"`
		Throttle any     `json:"throttle"`
		Brake    any     `json:"brake"`
	}
	weatherDump struct {
		T             float64  `json:"t"`
		Rainfall      any      `json:"rainfall"`
		TrackTemp     float64  `json:"trackTemp"`
		AirTemp       float64  `json:"airTemp"`
		Humidity      float64  `json:"humidity"`
		Pressure      float64  `json:"pressure"`
		WindSpeed     float64  `json:"windSpeed"`
		WindDirection *float64 `json:"windDirection"`
	}
	statusDump struct {
		T       float64 `json:"t"`
		Code    any     `json:"code"`
		Message string  `json:"message"`
	}
	qualiLapDump struct {
		Code    string  `json:"code"`
		Segment string  `json:"segment"`
		LapTime float64 `json:"lapTime"`
	}
)

func (s *Source) decodeSession(data []byte) (*provider.RawSession, error) {
	dump := sessionDump{}
	if err := oj.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("could not decode session dump: %w", err)
	}
	if !utils.CheckExporterVersion(dump.ExporterVersion) {
		return nil, fmt.Errorf("%w: %s (need at least %s)",
			provider.ErrUnsupportedVersion,
			dump.ExporterVersion,
			utils.MinExporterVersion)
	}
	ret := &provider.RawSession{
		Event: provider.EventMeta{
			Year:        dump.Event.Year,
			Round:       dump.Event.Round,
			Name:        dump.Event.Name,
			Location:    dump.Event.Location,
			SessionType: dump.Event.SessionType,
		},
	}
	for i := range dump.Entities {
		ret.Entities = append(ret.Entities, s.convertEntity(&dump.Entities[i]))
	}
	for i := range dump.Weather {
		ret.Weather = append(ret.Weather, convertWeather(&dump.Weather[i]))
	}
	for i := range dump.TrackStatus {
		d := &dump.TrackStatus[i]
		ret.TrackStatus = append(ret.TrackStatus, model.StatusRecord{
			StartTime: d.T,
			Code:      cast.ToString(d.Code),
			Message:   d.Message,
		})
	}
	if dump.ReferenceLap != nil {
		refLap := convertFragment(dump.ReferenceLap)
		ret.ReferenceLap = &refLap
	}
	for _, q := range dump.QualiLaps {
		ret.QualiLaps = append(ret.QualiLaps, provider.RawQualiLap{
			Code:    q.Code,
			Segment: q.Segment,
			LapTime: q.LapTime,
		})
	}
	return ret, nil
}

func (s *Source) convertEntity(in *entityDump) provider.RawEntity {
	ret := provider.RawEntity{Code: in.Code}
	if in.Color != "" {
		if c, err := utils.ParseHexColor(in.Color); err == nil {
			ret.Color = &c
		} else {
			s.l.Warn("ignoring invalid color",
				log.String("entity", in.Code),
				log.String("color", in.Color))
		}
	}
	for i := range in.Fragments {
		ret.Fragments = append(ret.Fragments, convertFragment(&in.Fragments[i]))
	}
	return ret
}

func convertFragment(in *fragmentDump) provider.RawFragment {
	ret := provider.RawFragment{
		Lap:      in.Lap,
		Compound: in.Compound,
		Samples:  make([]provider.RawSample, 0, len(in.Samples)),
	}
	for i := range in.Samples {
		ret.Samples = append(ret.Samples, convertSample(&in.Samples[i]))
	}
	return ret
}

func convertSample(in *sampleDump) provider.RawSample {
	// brake arrives as bool from some exporters, as percent from others
	brake := 0.0
	switch v := in.Brake.(type) {
	case bool:
		if v {
			brake = 100
		}
	default:
		brake = cast.ToFloat64(v)
	}
	return provider.RawSample{
		SessionTime: in.T,
		X:           in.X,
		Y:           in.Y,
		Distance:    in.Dist,
		RelDistance: in.RelDist,
		Speed:       in.Speed,
		Gear:        cast.ToInt(in.Gear),
		DRS:         cast.ToInt(in.DRS),
		Throttle:    cast.ToFloat64(in.Throttle),
		Brake:       brake,
	}
}

func convertWeather(in *weatherDump) model.WeatherSample {
	// rainfall may be a bool flag or a measured amount
	rainfall := 0.0
	switch v := in.Rainfall.(type) {
	case bool:
		if v {
			rainfall = 1
		}
	default:
		rainfall = cast.ToFloat64(v)
	}
	return model.WeatherSample{
		SessionTime:   in.T,
		Rainfall:      rainfall,
		TrackTemp:     in.TrackTemp,
		AirTemp:       in.AirTemp,
		Humidity:      in.Humidity,
		Pressure:      in.Pressure,
		WindSpeed:     in.WindSpeed,
		WindDirection: in.WindDirection,
	}
}
