package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ByLCY/lessonpress/artifact"
	"github.com/ByLCY/lessonpress/binding"
	"github.com/ByLCY/lessonpress/compose"
	"github.com/ByLCY/lessonpress/config"
	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/glyph"
	"github.com/ByLCY/lessonpress/layout"
	"github.com/ByLCY/lessonpress/logger"
	"github.com/ByLCY/lessonpress/preview"
	canvasrenderer "github.com/ByLCY/lessonpress/renderer/canvas"
	pptxrenderer "github.com/ByLCY/lessonpress/renderer/pptx"
	rasterrenderer "github.com/ByLCY/lessonpress/renderer/raster"
	"github.com/ByLCY/lessonpress/server"
)

type options struct {
	format  string
	input   string
	title   string
	output  string
	data    string
	preview bool
	debug   string
	thumb   string
}

func main() {
	var opts options
	flag.StringVar(&opts.format, "format", "worksheet", "输出格式："+formatList())
	flag.StringVar(&opts.input, "in", "", "课程内容 JSON 文件路径")
	flag.StringVar(&opts.title, "title", "", "文档标题")
	flag.StringVar(&opts.output, "out", "", "输出路径；套装格式写入目录，或以 .zip 结尾时写入压缩包")
	flag.StringVar(&opts.data, "data", "", "绑定到内容 ${path} 占位符的 JSON 数据")
	flag.BoolVar(&opts.preview, "preview", false, "只输出结构摘要 JSON，不渲染")
	flag.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	flag.StringVar(&opts.thumb, "thumb", "", "首页 PNG 缩略图输出路径")
	configPath := flag.String("config", "", "YAML 配置文件路径")
	table := flag.String("table", "", "点字对照表文件（覆盖配置）")
	serve := flag.Bool("serve", false, "启动 HTTP 服务")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if *table != "" {
		cfg.Render.GlyphTable = *table
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dispatcher, err := newDispatcher(cfg, log)
	if err != nil {
		log.Fatal("初始化渲染管线失败", "error", err)
	}

	if *serve {
		if err := listen(cfg, dispatcher, log); err != nil {
			log.Fatal("HTTP 服务异常退出", "error", err)
		}
		return
	}
	if err := run(context.Background(), opts, cfg, dispatcher); err != nil {
		log.Fatal("生成失败", "error", err)
	}
}

// newDispatcher wires glyph table, theme, composer and renderers from cfg.
func newDispatcher(cfg config.Config, log *logger.Logger) (*artifact.Dispatcher, error) {
	table := glyph.DefaultTable()
	if cfg.Render.GlyphTable != "" {
		t, err := glyph.LoadTable(cfg.Render.GlyphTable)
		if err != nil {
			return nil, err
		}
		table = t
	}
	theme, err := cfg.Theme.Compose()
	if err != nil {
		return nil, err
	}
	pdf := canvasrenderer.NewRenderer("")
	c := compose.New(pdf, glyph.NewRenderer(table), compose.WithTheme(theme))
	deck := pptxrenderer.NewRenderer(pptxrenderer.Options{})
	log.Debug("渲染管线就绪", "glyphTable", table.Name(), "glyphs", table.Len())
	return artifact.NewDispatcher(c, pdf, deck, log), nil
}

func listen(cfg config.Config, d *artifact.Dispatcher, log *logger.Logger) error {
	s := server.New(d, log, server.Options{
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		CORSOrigins:     cfg.Server.CORSOrigins,
		ThumbWidth:      cfg.Render.ThumbWidth,
	})
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP 服务启动", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("HTTP 服务关闭中")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// run 串联解码、绑定、摘要或布局与渲染。
func run(ctx context.Context, opts options, cfg config.Config, d *artifact.Dispatcher) error {
	format, err := content.ResolveFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.input == "" {
		return fmt.Errorf("缺少 -in 内容文件")
	}
	raw, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("无法读取内容文件 %s: %w", opts.input, err)
	}
	model, err := content.Decode(format, raw)
	if err != nil {
		return err
	}

	title := opts.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(opts.input), filepath.Ext(opts.input))
	}
	if opts.data != "" {
		var data any
		if err := json.Unmarshal([]byte(opts.data), &data); err != nil {
			return fmt.Errorf("解析 data JSON 失败: %w", err)
		}
		content.Bind(model, data)
		title = binding.Interpolate(title, data)
	}

	if opts.preview {
		return writePreview(preview.Build(format, model), opts.output)
	}

	if opts.debug != "" || opts.thumb != "" {
		result, err := d.Layout(format, title, model)
		if err != nil {
			return fmt.Errorf("布局计算失败: %w", err)
		}
		if opts.debug != "" {
			if err := writeDebug(result, opts.debug); err != nil {
				return err
			}
		}
		if opts.thumb != "" {
			png, err := rasterrenderer.NewRenderer(rasterrenderer.Options{Width: cfg.Render.ThumbWidth}).Render(result)
			if err != nil {
				return fmt.Errorf("渲染缩略图失败: %w", err)
			}
			if err := writeFile(opts.thumb, png); err != nil {
				return err
			}
		}
	}

	arts, err := d.Render(ctx, format, title, model)
	if err != nil {
		return err
	}
	return writeArtifacts(arts, opts.output)
}

// writeArtifacts writes a single artifact to out (default: its own file name). Bundles go to a
// zip when out ends in .zip, otherwise into the directory out.
func writeArtifacts(arts []artifact.Artifact, out string) error {
	if len(arts) == 1 {
		path := out
		if path == "" {
			path = arts[0].FileName()
		}
		if err := writeFile(path, arts[0].Data); err != nil {
			return err
		}
		fmt.Printf("已生成 %s（%d 页）：%s\n", arts[0].Category, arts[0].Pages, path)
		return nil
	}
	if strings.EqualFold(filepath.Ext(out), ".zip") {
		data, err := artifact.Archive(arts)
		if err != nil {
			return err
		}
		if err := writeFile(out, data); err != nil {
			return err
		}
		fmt.Printf("已生成套装压缩包：%s\n", out)
		return nil
	}
	for _, a := range arts {
		path := filepath.Join(out, a.FileName())
		if err := writeFile(path, a.Data); err != nil {
			return err
		}
		fmt.Printf("已生成 %s（%d 页）：%s\n", a.Category, a.Pages, path)
	}
	return nil
}

func writePreview(s preview.Summary, out string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("编码摘要失败: %w", err)
	}
	if out == "" {
		fmt.Println(string(data))
		return nil
	}
	return writeFile(out, data)
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}

func formatList() string {
	names := make([]string, 0, len(content.Formats()))
	for _, f := range content.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
