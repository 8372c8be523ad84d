package endpoints

// Endpoints collects every endpoint the HTTP router serves.
type Endpoints struct {
	ConverterEndpoint ConverterEndpoint
}
