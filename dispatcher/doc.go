// Package dispatcher sends requests to the platform API and turns every
// outcome into a classified Result.
//
// A Dispatcher holds the base address, default headers and timeout for a
// client session. Each call to Request logs the outbound request with
// credentials masked, sends it through the Transport, classifies the
// outcome as a SuccessResult or an ExceptionResult, logs the result under
// the same request id and returns it. Transport failures never surface as
// Go errors from Request.
//
//	d, err := dispatcher.New(dispatcher.Config{
//	    Headers: map[string]string{redact.HeaderAPIKey: key},
//	})
//	res := d.Request(ctx, dispatcher.MethodGet, "/orders", nil)
//	if !res.Success() {
//	    log.Printf("orders: %v", res.Err())
//	}
//
// NewFromClientConfig builds one from a loaded config.ClientConfig and also
// applies its logging and telemetry settings:
//
//	cfg, err := config.Load("order-sync")
//	d, err := dispatcher.NewFromClientConfig(ctx, cfg)
//	defer d.Close(ctx)
package dispatcher
