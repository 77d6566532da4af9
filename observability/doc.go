// Package observability provides OpenTelemetry metrics for pipekit.
//
// InitMeter installs a global meter provider exporting over OTLP HTTP.
// Library code records through instruments created from the global
// provider, so everything is a no-op until an application calls
// InitMeter (or installs its own provider).
//
//	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
//	    ServiceName: "recorder",
//	    Endpoint:    "localhost:4318",
//	    Insecure:    true,
//	})
//	defer mp.Shutdown(ctx)
package observability
