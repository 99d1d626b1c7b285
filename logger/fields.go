package logger

import (
	"time"

	"go.uber.org/zap"
)

// HTTP

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Domain

func UserID(v string) zap.Field    { return zap.String("user_id", v) }
func Email(v string) zap.Field     { return zap.String("email", v) }
func DisputeID(v string) zap.Field { return zap.String("dispute_id", v) }
func CaseID(v string) zap.Field    { return zap.String("case_id", v) }
func CourseID(v int) zap.Field     { return zap.Int("course_id", v) }
func Filename(v string) zap.Field  { return zap.String("filename", v) }

// System

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Err(err error) zap.Field      { return zap.Error(err) }
func Count(v int) zap.Field        { return zap.Int("count", v) }
func Bytes(v int64) zap.Field      { return zap.Int64("bytes", v) }

func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
