package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var (
	AppLogger    *log.Logger
	ServerLogger *log.Logger
	ErrorLogger  *log.Logger

	logLevel      string
	appLogFile    *os.File
	serverLogFile *os.File
	initialized   bool
)

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// openLogFile opens path for appending, creating its directory. On failure
// the returned writer discards output and the reported path says so.
func openLogFile(path, channel string) (io.Writer, *os.File, string) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create %s log directory %s: %v. %s logs will be discarded.", channel, dir, err, channel)
		return io.Discard, nil, "(discarded)"
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		ErrorLogger.Printf("Failed to open %s log file %s: %v. %s logs will be discarded.", channel, path, err, channel)
		return io.Discard, nil, "(discarded)"
	}
	return f, f, path
}

func InitGlobalLoggers(appLogPath, serverLogPath, level string) error {
	if initialized && appLogFile != nil && serverLogFile != nil && strings.ToUpper(level) == logLevel {
		return nil
	}
	if appLogFile != nil {
		appLogFile.Close()
		appLogFile = nil
	}
	if serverLogFile != nil {
		serverLogFile.Close()
		serverLogFile = nil
	}

	logLevel = strings.ToUpper(strings.TrimSpace(level))
	if _, ok := levelRank[logLevel]; !ok {
		logLevel = "INFO"
	}

	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	appWriter, appFile, actualAppLogPath := openLogFile(appLogPath, "App")
	appLogFile = appFile
	AppLogger = log.New(appWriter, "APP: ", log.Ldate|log.Ltime|log.Lshortfile)

	serverWriter, serverFile, actualServerLogPath := openLogFile(serverLogPath, "Server")
	serverLogFile = serverFile
	ServerLogger = log.New(serverWriter, "SERVER: ", log.Ldate|log.Ltime|log.Lshortfile)

	if !initialized {
		AppLogger.Printf("App logger initialized. Log level: %s. Output file: %s", logLevel, actualAppLogPath)
		ServerLogger.Printf("Server logger initialized. Log level: %s. Output file: %s", logLevel, actualServerLogPath)
	}
	initialized = true
	return nil
}

func enabled(level string) bool {
	return levelRank[level] >= levelRank[logLevel]
}

func Info(format string, v ...interface{}) {
	if AppLogger != nil && enabled("INFO") {
		AppLogger.Printf(format, v...)
	}
}

func Debug(format string, v ...interface{}) {
	if AppLogger != nil && enabled("DEBUG") {
		AppLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if AppLogger != nil && enabled("WARN") {
		AppLogger.Printf("WARN: "+format, v...)
	}
}

// Error always reaches stderr and, when a log file is open, the app log.
func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Print(message)
	}
	if AppLogger != nil && appLogFile != nil {
		AppLogger.Print(message)
	}
}

func Fatal(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Fatal(message)
	} else {
		log.Fatal(message)
	}
}

func ServerInfo(format string, v ...interface{}) {
	if ServerLogger != nil && enabled("INFO") {
		ServerLogger.Printf(format, v...)
	}
}

func ServerDebug(format string, v ...interface{}) {
	if ServerLogger != nil && enabled("DEBUG") {
		ServerLogger.Printf(format, v...)
	}
}

func ServerError(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Print(message)
	}
	if ServerLogger != nil && serverLogFile != nil {
		ServerLogger.Print(message)
	}
}

// Level returns the active log level name.
func Level() string {
	return logLevel
}

func CloseLogFiles() {
	if appLogFile != nil {
		AppLogger.Println("Closing app log file.")
		appLogFile.Close()
		appLogFile = nil
	}
	if serverLogFile != nil {
		ServerLogger.Println("Closing server log file.")
		serverLogFile.Close()
		serverLogFile = nil
	}
	initialized = false
}
