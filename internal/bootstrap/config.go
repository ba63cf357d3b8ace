package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/synctv-org/authd/cmd/flags"
	"github.com/synctv-org/authd/internal/conf"
	"github.com/synctv-org/authd/utils"
)

func InitDefaultConfig(ctx context.Context) error {
	conf.Conf = conf.DefaultConfig()
	return nil
}

func InitConfig(ctx context.Context) (err error) {
	if flags.SkipConfig && flags.SkipEnv {
		return errors.New("skip config and skip env at the same time")
	}
	conf.Conf = conf.DefaultConfig()
	if !flags.SkipConfig {
		configFile, err := utils.OptFilePath(filepath.Join(flags.DataDir, "config.yaml"))
		if err != nil {
			return fmt.Errorf("config file path error: %w", err)
		}
		err = confFromConfig(configFile, conf.Conf)
		if err != nil {
			return fmt.Errorf("load config from file error: %w", err)
		}
		log.Infof("load config success from file: %s", configFile)
		if conf.Conf.Session.Secret == "" {
			if conf.Conf.Session.Secret, err = utils.RandToken(32); err != nil {
				return err
			}
			log.Info("generated session secret")
		}
		if err = restoreConfig(configFile, conf.Conf); err != nil {
			log.Warnf("restore config error: %v", err)
		} else {
			log.Info("restore config success")
		}
	}
	if !flags.SkipEnv {
		prefix := flags.ENV_PREFIX
		if flags.EnvNoPrefix {
			prefix = ""
			log.Info("load config from env without prefix")
		} else {
			log.Infof("load config from env with prefix: %s", prefix)
		}
		err := confFromEnv(prefix, conf.Conf)
		if err != nil {
			return fmt.Errorf("load config from env error: %w", err)
		}
		log.Info("load config success from env")
	}
	if conf.Conf.Session.Secret == "" {
		log.Warn("session secret is empty, cookies will not survive a restart")
		if conf.Conf.Session.Secret, err = utils.RandToken(32); err != nil {
			return err
		}
	}
	return nil
}

func confFromConfig(filePath string, conf *conf.Config) error {
	if filePath == "" {
		return errors.New("config file path is empty")
	}
	if !utils.Exists(filePath) {
		log.Infof("config file not exists, create new config file: %s", filePath)
		return conf.Save(filePath)
	}
	return utils.ReadYaml(filePath, conf)
}

func restoreConfig(filePath string, conf *conf.Config) error {
	if filePath == "" {
		return errors.New("config file path is empty")
	}
	return conf.Save(filePath)
}

func confFromEnv(prefix string, conf *conf.Config) error {
	s, err := getEnvFiles(flags.DataDir)
	if err != nil {
		return err
	}
	if flags.Dev {
		ss, err := getEnvFiles(".")
		if err != nil {
			return err
		}
		s = append(s, ss...)
	}
	if len(s) != 0 {
		err = godotenv.Overload(s...)
		if err != nil {
			return err
		}
	}
	return env.ParseWithOptions(conf, env.Options{
		Prefix: prefix,
	})
}

// getEnvFiles lists the .env* files directly under root.
func getEnvFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), ".env") {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	return files, nil
}
