package api

import (
	"encoding/json"
	"strconv"

	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
)

// envelope mirrors the backend's dynamic success shape: some endpoints wrap
// payloads in {success, data}, others return the data bare. decodeData
// normalizes both at the boundary so nothing downstream branches on shape.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(body []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && (env.Success != nil || env.Data != nil) {
		if env.Success != nil && !*env.Success {
			msg := env.Message
			if msg == "" {
				msg = "the sales server reported a failure"
			}
			return apperror.NewSubmissionError(msg, nil)
		}
		if v == nil {
			return nil
		}
		if env.Data == nil {
			return apperror.NewSubmissionError("response carried no data", nil)
		}
		return json.Unmarshal(env.Data, v)
	}

	if v == nil {
		return nil
	}
	return json.Unmarshal(body, v)
}

// flexID tolerates the backend serializing ids as either JSON numbers or
// strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string {
	return string(f)
}

// flexFloat tolerates numerics serialized as strings, e.g. "45000.00".
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
