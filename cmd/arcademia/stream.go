package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/philipparndt/arcademia/internal/logging"
	"github.com/philipparndt/arcademia/pkg/analysis"
	"github.com/philipparndt/arcademia/pkg/stl"
	"github.com/philipparndt/arcademia/pkg/stream"
	"github.com/spf13/cobra"
)

var (
	streamIP    string
	streamPort  int
	streamChunk int
	listenOut   string
)

var streamCmd = &cobra.Command{
	Use:   "stream [file...]",
	Short: "Send models to the AR client over UDP",
	Long:  "Merge the given models into one mesh and send it to the AR client as chunked UDP datagrams.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStream,
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive one streamed mesh and describe it",
	Args:  cobra.NoArgs,
	RunE:  runListen,
}

func init() {
	streamCmd.Flags().StringVar(&streamIP, "ip", "", "AR client address (default from config)")
	streamCmd.Flags().IntVar(&streamPort, "port", 0, "AR client UDP port (default from config)")
	streamCmd.Flags().IntVar(&streamChunk, "chunk", 0, "payload bytes per datagram (default from config)")
	listenCmd.Flags().IntVar(&streamPort, "port", 0, "UDP port to listen on (default from config)")
	listenCmd.Flags().StringVar(&listenOut, "out", "", "write the received mesh to this STL file")

	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(listenCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	ar := cfg.AR
	if streamIP != "" {
		ar.IP = streamIP
	}
	if streamPort != 0 {
		ar.Port = streamPort
	}
	if streamChunk != 0 {
		ar.Chunk = streamChunk
	}

	s, err := loadScene(cmd.Context(), args)
	if err != nil {
		return err
	}

	n, err := stream.NewSender(ar.Addr(), ar.Chunk).Send(cmd.Context(), s.Merge())
	if err != nil {
		return fmt.Errorf("failed to stream to %s: %w", ar.Addr(), err)
	}
	logging.Info("sent %d bytes to %s", n, ar.Addr())
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", s.StatsLine(), ar.Addr())
	return nil
}

func runListen(cmd *cobra.Command, args []string) error {
	port := cfg.AR.Port
	if streamPort != 0 {
		port = streamPort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := net.ListenPacket("udp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	defer conn.Close()

	logging.Info("waiting for a mesh on %s", conn.LocalAddr())
	m, err := stream.Receive(ctx, conn)
	if err != nil {
		return err
	}

	for _, s := range describer().DescribeModel(m.Name, analysis.Analyze(m)) {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}

	if listenOut == "" {
		return nil
	}
	f, err := os.Create(listenOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", listenOut, err)
	}
	if err := stl.WriteBinary(f, stl.FromMesh(m)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
